package service

import (
	"sweep-lab/internal/config"
)

type ServiceContext struct {
	Config  *config.Config
	Creator *SweepCreator
}

func NewServiceContext(cfg *config.Config) *ServiceContext {
	return &ServiceContext{
		Config:  cfg,
		Creator: NewSweepCreator(cfg.Sweep),
	}
}
