package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/groceries/tools/dashgen/rules"
	"github.com/donaldgifford/groceries/tools/dashgen/validate"
)

var known = map[string]bool{
	"groceries_http_requests_total":           true,
	"groceries_http_request_duration_seconds": true,
}

func TestExpr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		expr   string
		wantOk bool
	}{
		{name: "known counter", expr: `sum(rate(groceries_http_requests_total[5m]))`, wantOk: true},
		{
			name:   "histogram bucket",
			expr:   `histogram_quantile(0.9, sum(rate(groceries_http_request_duration_seconds_bucket[5m])) by (le))`,
			wantOk: true,
		},
		{name: "unknown metric", expr: `rate(groceries_nope_total[5m])`, wantOk: false},
		{name: "syntax error", expr: `sum(rate(groceries_http_requests_total[5m])`, wantOk: false},
		{name: "scalar only", expr: `time()`, wantOk: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := validate.Expr(tt.expr, known)
			assert.Equal(t, tt.wantOk, res.Ok(), "errors: %v", res.Errors)
			if !tt.wantOk {
				assert.Error(t, res.Err("test"))
			}
		})
	}
}

func TestRules_RejectsRuleWithoutName(t *testing.T) {
	t.Parallel()

	cr := rules.PrometheusRule{
		Spec: rules.RuleGroupsSpec{
			Groups: []rules.RuleGroup{{
				Name:  "g",
				Rules: []rules.Rule{{Expr: `groceries_http_requests_total`}},
			}},
		},
	}
	res := validate.Rules(cr, known)
	assert.False(t, res.Ok())
}
