package service

import (
	"math"
	"testing"
)

func TestParseNumericToken(t *testing.T) {
	scenarios := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"科学计数法", "1e-4", 0.0001, true},
		{"科学计数法-大写E", "5E2", 500, true},
		{"普通小数", "0.25", 0.25, true},
		{"整数", "64", 64, true},
		{"负数", "-3.5", -3.5, true},
		{"百分号", "50%", 0.5, true},
		{"超过100的百分号", "250%", 2.5, true},
		{"k后缀", "2k", 2000, true},
		{"大写K后缀", "3K", 3000, true},
		{"m后缀", "1.5m", 1500000, true},
		{"千分位逗号", "2,000", 2000, true},
		{"首尾空白", "  42  ", 42, true},
		{"非数值", "abc", 0, false},
		{"空串", "", 0, false},
		{"纯空白", "   ", 0, false},
		{"只有后缀", "k", 0, false},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			got, ok := parseNumericToken(s.input)
			if ok != s.ok {
				t.Fatalf("parseNumericToken(%q) ok=%v, 期望 %v", s.input, ok, s.ok)
			}
			if ok && math.Abs(got-s.want) > 1e-12 {
				t.Fatalf("parseNumericToken(%q)=%v, 期望 %v", s.input, got, s.want)
			}
		})
	}
}

// 数值恒等性：规范要求的三个基准值必须精确成立
func TestParseNumericTokenIdentity(t *testing.T) {
	if v, _ := parseNumericToken("1e-4"); v != 0.0001 {
		t.Errorf("1e-4 应为 0.0001, 实际 %v", v)
	}
	if v, _ := parseNumericToken("50%"); v != 0.5 {
		t.Errorf("50%% 应为 0.5, 实际 %v", v)
	}
	if v, _ := parseNumericToken("2k"); v != 2000 {
		t.Errorf("2k 应为 2000, 实际 %v", v)
	}
}
