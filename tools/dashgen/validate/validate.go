// Package validate checks generated dashboards and rules for PromQL syntax
// errors and references to metrics the service does not export.
package validate

import (
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/dealsense/tools/dashgen/rules"
)

// Result collects validation findings. Errors fail generation; warnings do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r *Result) Ok() bool { return len(r.Errors) == 0 }

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Expr parses a PromQL expression and checks every selected metric name
// against known. Rule names recorded elsewhere in the same run count as known.
func Expr(where, expr string, known map[string]bool, res *Result) {
	parsed, err := parser.ParseExpr(expr)
	if err != nil {
		res.errorf("%s: parsing %q: %v", where, expr, err)
		return
	}

	parser.Inspect(parsed, func(node parser.Node, _ []parser.Node) error {
		vs, ok := node.(*parser.VectorSelector)
		if !ok {
			return nil
		}
		if vs.Name == "" {
			res.warnf("%s: selector without metric name in %q", where, expr)
			return nil
		}
		if !known[vs.Name] {
			res.errorf("%s: unknown metric %q", where, vs.Name)
		}
		return nil
	})
}

// Dashboard validates every Prometheus target in every panel, including
// panels nested in rows.
func Dashboard(dash *dashboard.Dashboard, known map[string]bool) *Result {
	res := &Result{}
	for _, p := range dash.Panels {
		if p.Panel != nil {
			panel(p.Panel, known, res)
		}
		if p.RowPanel != nil {
			for i := range p.RowPanel.Panels {
				panel(&p.RowPanel.Panels[i], known, res)
			}
		}
	}
	return res
}

func panel(p *dashboard.Panel, known map[string]bool, res *Result) {
	title := "untitled panel"
	if p.Title != nil {
		title = *p.Title
	}
	if len(p.Targets) == 0 {
		res.warnf("panel %q has no targets", title)
	}
	for _, t := range p.Targets {
		q, ok := t.(*prometheus.Dataquery)
		if !ok {
			res.warnf("panel %q: non-prometheus target skipped", title)
			continue
		}
		Expr(fmt.Sprintf("panel %q", title), q.Expr, known, res)
	}
}

// Rules validates every rule expression in a PrometheusRule and checks that
// alerts carry a severity label.
func Rules(cr rules.PrometheusRule, known map[string]bool) *Result {
	res := &Result{}
	for _, g := range cr.Spec.Groups {
		for _, r := range g.Rules {
			name := r.Record
			if name == "" {
				name = r.Alert
			}
			if name == "" {
				res.errorf("group %s: rule without record or alert name", g.Name)
				continue
			}
			if r.Record != "" && !strings.Contains(r.Record, ":") {
				res.warnf("recording rule %s does not follow level:metric:operation naming", r.Record)
			}
			if r.Alert != "" && r.Labels["severity"] == "" {
				res.errorf("alert %s missing severity label", r.Alert)
			}
			Expr(fmt.Sprintf("rule %s", name), r.Expr, known, res)
		}
	}
	return res
}
