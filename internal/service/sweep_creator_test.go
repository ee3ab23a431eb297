package service

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"sweep-lab/internal/config"
	"sweep-lab/internal/db"
)

func TestExpandHyperparameter(t *testing.T) {
	fv := func(v float64) *float64 { return &v }

	t.Run("choice返回值副本", func(t *testing.T) {
		hp := Hyperparameter{Type: HyperparamTypeChoice, Values: []interface{}{"adam", "sgd"}}
		axis := expandHyperparameter(hp, 4)
		if !reflect.DeepEqual(axis, hp.Values) {
			t.Fatalf("期望 %v, 实际 %v", hp.Values, axis)
		}
		axis[0] = "mutated"
		if hp.Values[0] != "adam" {
			t.Error("展开结果应是副本，不能回写原值集")
		}
	})

	t.Run("fixed单值", func(t *testing.T) {
		hp := Hyperparameter{Type: HyperparamTypeFixed, FixedValue: 0.5}
		if axis := expandHyperparameter(hp, 4); len(axis) != 1 || axis[0] != 0.5 {
			t.Fatalf("期望 [0.5], 实际 %v", axis)
		}
	})

	t.Run("fixed无值返回空", func(t *testing.T) {
		if axis := expandHyperparameter(Hyperparameter{Type: HyperparamTypeFixed}, 4); axis != nil {
			t.Fatalf("期望 nil, 实际 %v", axis)
		}
	})

	t.Run("range按step展开", func(t *testing.T) {
		hp := Hyperparameter{Type: HyperparamTypeRange, Min: fv(10), Max: fv(50), Step: fv(10)}
		want := []interface{}{10.0, 20.0, 30.0, 40.0, 50.0}
		if axis := expandHyperparameter(hp, 4); !reflect.DeepEqual(axis, want) {
			t.Fatalf("期望 %v, 实际 %v", want, axis)
		}
	})

	t.Run("range无step均匀采样", func(t *testing.T) {
		hp := Hyperparameter{Type: HyperparamTypeRange, Min: fv(0), Max: fv(3)}
		want := []interface{}{0.0, 1.0, 2.0, 3.0}
		if axis := expandHyperparameter(hp, 4); !reflect.DeepEqual(axis, want) {
			t.Fatalf("期望 %v, 实际 %v", want, axis)
		}
	})

	t.Run("range上下界相同退化为单值", func(t *testing.T) {
		hp := Hyperparameter{Type: HyperparamTypeRange, Min: fv(7), Max: fv(7)}
		if axis := expandHyperparameter(hp, 4); len(axis) != 1 || axis[0] != 7.0 {
			t.Fatalf("期望 [7], 实际 %v", axis)
		}
	})

	t.Run("step过小时受上限保护", func(t *testing.T) {
		// 不截断会产生十亿个点
		hp := Hyperparameter{Type: HyperparamTypeRange, Min: fv(0), Max: fv(1e9), Step: fv(1)}
		axis := expandHyperparameter(hp, 4)
		if len(axis) != maxRangeAxisPoints {
			t.Fatalf("期望截断在 %d 个点, 实际 %d", maxRangeAxisPoints, len(axis))
		}
	})

	t.Run("缺失边界返回空", func(t *testing.T) {
		hp := Hyperparameter{Type: HyperparamTypeRange, Min: fv(0)}
		if axis := expandHyperparameter(hp, 4); axis != nil {
			t.Fatalf("期望 nil, 实际 %v", axis)
		}
	})
}

func TestGridProductSize(t *testing.T) {
	if got := gridProductSize(nil); got != 0 {
		t.Errorf("空网格大小应为 0, 实际 %d", got)
	}
	axes := [][]interface{}{{1, 2}, {"a", "b", "c"}}
	if got := gridProductSize(axes); got != 6 {
		t.Errorf("期望 6, 实际 %d", got)
	}
}

func TestEnumerateGrid(t *testing.T) {
	axes := [][]interface{}{
		{1.0, 2.0},
		{"a", "b", "c"},
	}

	t.Run("完整笛卡尔积-末轴最快", func(t *testing.T) {
		combos := enumerateGrid(axes, 100)
		want := [][]interface{}{
			{1.0, "a"}, {1.0, "b"}, {1.0, "c"},
			{2.0, "a"}, {2.0, "b"}, {2.0, "c"},
		}
		if !reflect.DeepEqual(combos, want) {
			t.Fatalf("期望 %v, 实际 %v", want, combos)
		}
	})

	t.Run("按limit截断", func(t *testing.T) {
		combos := enumerateGrid(axes, 4)
		if len(combos) != 4 {
			t.Fatalf("期望 4 个组合, 实际 %d", len(combos))
		}
		if !reflect.DeepEqual(combos[3], []interface{}{2.0, "a"}) {
			t.Errorf("第 4 个组合应为 [2 a], 实际 %v", combos[3])
		}
	})

	t.Run("空轴或零limit", func(t *testing.T) {
		if combos := enumerateGrid(nil, 10); combos != nil {
			t.Errorf("空轴应返回 nil, 实际 %v", combos)
		}
		if combos := enumerateGrid(axes, 0); combos != nil {
			t.Errorf("limit=0 应返回 nil, 实际 %v", combos)
		}
	})
}

func TestRenderRunCommand(t *testing.T) {
	scenarios := []struct {
		name    string
		command string
		names   []string
		combo   []interface{}
		want    string
	}{
		{
			"占位符替换",
			"python train.py --lr {learning_rate}",
			[]string{"learning_rate"}, []interface{}{0.0001},
			"python train.py --lr 0.0001",
		},
		{
			"无占位符时追加",
			"python train.py",
			[]string{"batch_size"}, []interface{}{64.0},
			"python train.py --batch_size 64",
		},
		{
			"混合",
			"python train.py --lr {learning_rate}",
			[]string{"learning_rate", "optimizer"}, []interface{}{1e-05, "adam"},
			"python train.py --lr 1e-05 --optimizer adam",
		},
		{
			"空命令用默认模板",
			"",
			[]string{"dropout"}, []interface{}{0.1},
			"python train.py --dropout 0.1",
		},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			if got := renderRunCommand(s.command, s.names, s.combo); got != s.want {
				t.Errorf("期望 %q, 实际 %q", s.want, got)
			}
		})
	}
}

// TestSweepCreator_Integration 集成测试：真实展开并落库
// 需要真实的数据库连接
func TestSweepCreator_Integration(t *testing.T) {
	cfg, err := config.LoadConfig("../../config/config.yaml")
	if err != nil {
		t.Skip("跳过集成测试：无法加载配置文件（请确保 config/config.yaml 存在）")
		return
	}

	if err := db.InitDB(cfg); err != nil {
		t.Skip("跳过集成测试：无法连接数据库")
		return
	}

	creator := NewSweepCreator(cfg.Sweep)

	result := BuildSweepDraftFromPrompt(
		"Sweep dropout: 0.1, 0.2 and batch_size: 16, 32. Use command `python train.py --dropout {dropout}`. Limit to 3 runs.",
		nil,
	)

	created, err := creator.Create(context.Background(), result.Config)
	if err != nil {
		t.Fatalf("创建扫参任务失败: %v", err)
	}

	t.Logf("创建 Sweep ID=%d, 网格大小=%d, 实际运行数=%d", created.Sweep.ID, created.GridSize, len(created.Runs))

	if created.GridSize != 4 {
		t.Errorf("期望网格大小 4, 实际 %d", created.GridSize)
	}
	if len(created.Runs) != 3 {
		t.Errorf("期望按 MaxRuns 截断为 3 个运行, 实际 %d", len(created.Runs))
	}
	for _, run := range created.Runs {
		if run.SweepID != created.Sweep.ID || run.Status != "pending" {
			t.Errorf("运行记录字段不符: %+v", run)
		}
		if strings.Contains(run.Command, "{dropout}") {
			t.Errorf("占位符未替换: %q", run.Command)
		}
	}
}
