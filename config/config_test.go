package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/treelog/treelog/appender"
	"github.com/treelog/treelog/core"
	"github.com/treelog/treelog/diag"
	"github.com/treelog/treelog/filter"
	"github.com/treelog/treelog/hierarchy"
)

func TestApply_FullConfiguration(t *testing.T) {
	r := hierarchy.NewRepository("config-test")
	additive := false

	Apply(r, hierarchy.Overwrite, []Directive{
		{Kind: Threshold, Level: "debug"},
		{Kind: DefineAppender, Name: "mem", Type: "memory"},
		{Kind: DefineFilter, Name: "mem", Type: "levelRange",
			Params: Params{"min": "info", "max": "fatal"}},
		{Kind: DefineRoot, Level: "debug", Appenders: []string{"mem"}},
		{Kind: DefineLogger, Name: "app.db", Level: "warn",
			Additive: &additive, Appenders: []string{"mem"}},
	})

	if !r.Configured() {
		t.Fatal("repository should be configured after Apply")
	}
	if r.Generation() != 1 {
		t.Errorf("generation = %d, want 1", r.Generation())
	}
	if got := r.Threshold(); got.Compare(core.Debug) != 0 {
		t.Errorf("threshold = %s, want DEBUG", got)
	}

	db := r.Logger("app.db")
	if lvl, ok := db.Level(); !ok || lvl.Compare(core.Warn) != 0 {
		t.Errorf("app.db level = %v, %v, want WARN", lvl, ok)
	}
	if db.Additive() {
		t.Error("app.db should not be additive")
	}

	mem := db.LookupAppender("mem").(*appender.Memory)
	db.Warn("kept")
	if mem.Len() != 1 {
		t.Errorf("memory appender got %d events, want 1", mem.Len())
	}

	// The levelRange filter denies sub-INFO events at the appender.
	r.Logger("other").Debug("denied by filter")
	if mem.Len() != 1 {
		t.Error("filter on appender should deny debug events")
	}
}

func TestApply_SkipsBadDirectivesBestEffort(t *testing.T) {
	var dbuf bytes.Buffer
	diag.SetWriter(&dbuf)
	defer diag.SetWriter(nil)

	r := hierarchy.NewRepository("config-test")
	Apply(r, hierarchy.Overwrite, []Directive{
		{Kind: DefineAppender, Name: "bogus", Type: "no-such-type"},
		{Kind: DefineFilter, Name: "missing", Type: "denyAll"},
		{Kind: DefineLogger, Name: "app", Level: "loud"},
		{Kind: Threshold, Level: "deafening"},
		{Kind: DefineAppender, Name: "mem", Type: "memory"},
		{Kind: DefineRoot, Appenders: []string{"mem"}},
	})

	// The good directives still applied.
	if !r.Configured() {
		t.Fatal("repository should be configured despite bad directives")
	}
	if r.Root().LookupAppender("mem") == nil {
		t.Error("valid appender directive should have been applied")
	}
	if _, ok := r.Logger("app").Level(); ok {
		t.Error("bad level name must not set a level")
	}

	out := dbuf.String()
	for _, want := range []string{"no-such-type", "missing", "loud", "deafening"} {
		if !strings.Contains(out, want) {
			t.Errorf("diagnostics missing mention of %q:\n%s", want, out)
		}
	}
}

func TestApply_GenerationAdvancesOncePerApply(t *testing.T) {
	r := hierarchy.NewRepository("config-test")
	ds := []Directive{
		{Kind: DefineAppender, Name: "mem", Type: "memory"},
		{Kind: DefineRoot, Appenders: []string{"mem"}},
	}
	Apply(r, hierarchy.Merge, ds)
	Apply(r, hierarchy.Overwrite, ds)
	if r.Generation() != 2 {
		t.Errorf("generation = %d, want 2", r.Generation())
	}
}

func TestNewAppender_BuiltinTypes(t *testing.T) {
	for _, typ := range []string{"console", "memory", "zerolog", "logrus"} {
		a, err := NewAppender(typ, "a", nil)
		if err != nil {
			t.Errorf("NewAppender(%q): %v", typ, err)
			continue
		}
		if a.Name() != "a" {
			t.Errorf("NewAppender(%q).Name() = %q", typ, a.Name())
		}
	}
	if _, err := NewAppender("nope", "a", nil); err == nil {
		t.Error("unknown appender type should error")
	}
}

func TestNewFilter_BuiltinTypes(t *testing.T) {
	f, err := NewFilter("stringMatch", Params{"substr": "database"})
	if err != nil {
		t.Fatalf("NewFilter: %v", err)
	}
	e := core.NewEvent("x", core.Info, "database ready")
	if got := f.Decide(e); got != filter.Accept {
		t.Errorf("stringMatch = %s, want Accept", got)
	}

	if _, err := NewFilter("stringMatch", nil); err == nil {
		t.Error("stringMatch without substr should error")
	}
	if _, err := NewFilter("levelRange", Params{"min": "loud"}); err == nil {
		t.Error("levelRange with bad level should error")
	}
	if _, err := NewFilter("nope", nil); err == nil {
		t.Error("unknown filter type should error")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("TREELOG_ROOT_LEVEL", "warn")
	t.Setenv("TREELOG_THRESHOLD", "info")
	t.Setenv("TREELOG_APPENDER", "memory")

	ds, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	r := hierarchy.NewRepository("env-test")
	Apply(r, hierarchy.Overwrite, ds)

	if got := r.Threshold(); got.Compare(core.Info) != 0 {
		t.Errorf("threshold = %s, want INFO", got)
	}
	if lvl, ok := r.Root().Level(); !ok || lvl.Compare(core.Warn) != 0 {
		t.Errorf("root level = %v, %v, want WARN", lvl, ok)
	}
	if r.Root().LookupAppender("root") == nil {
		t.Error("root appender not attached")
	}
}
