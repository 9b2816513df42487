package weather

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/weatherbox/common"
	"github.com/milk9111/weatherbox/ecs/component"
	"github.com/milk9111/weatherbox/material"
	"github.com/milk9111/weatherbox/prefabs"
)

const presetDispatchScript = `
trigger(__engine)
`

// ScriptLibrary compiles weather preset scripts on first use and caches them
// until Reload.
type ScriptLibrary struct {
	load     func(name string) ([]byte, error)
	names    func() []string
	compiled map[string]*tengo.Compiled
}

// NewScriptLibrary reads presets from prefabs/scripts/weather.
func NewScriptLibrary() *ScriptLibrary {
	return &ScriptLibrary{
		load:     prefabs.LoadScript,
		names:    prefabs.ScriptNames,
		compiled: make(map[string]*tengo.Compiled),
	}
}

// Names lists the available preset names, sorted.
func (l *ScriptLibrary) Names() []string {
	if l == nil || l.names == nil {
		return nil
	}
	return l.names()
}

func (l *ScriptLibrary) Has(name string) bool {
	for _, n := range l.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Reload drops every compiled preset so the next run reads the source again.
func (l *ScriptLibrary) Reload() {
	if l == nil {
		return
	}
	clear(l.compiled)
}

// Run executes preset name against d and returns how many bodies the script
// spawned or pushed before it finished or failed.
func (l *ScriptLibrary) Run(name string, d *Dispatcher) (int, error) {
	if l == nil || d == nil {
		return 0, errors.New("weather script: nil runtime")
	}
	compiled, err := l.compile(name)
	if err != nil {
		return 0, err
	}

	var affected int
	engine := buildPresetEngine(d, &affected)
	if err := compiled.Set("__engine", engine); err != nil {
		return 0, err
	}
	if err := compiled.Run(); err != nil {
		return affected, err
	}
	if affected > 0 {
		d.warnSaturated(Kind(name), affected)
	}
	return affected, nil
}

func (l *ScriptLibrary) compile(name string) (*tengo.Compiled, error) {
	if c, ok := l.compiled[name]; ok && c != nil {
		return c, nil
	}
	src, err := l.load(name)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + presetDispatchScript))
	_ = script.Add("__engine", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	if l.compiled == nil {
		l.compiled = make(map[string]*tengo.Compiled)
	}
	l.compiled[name] = compiled
	return compiled, nil
}

func buildPresetEngine(d *Dispatcher, affected *int) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["width"] = &tengo.Float{Value: d.cfg.Width}
	values["height"] = &tengo.Float{Value: d.cfg.Height}

	values["rand"] = &tengo.UserFunction{Name: "rand", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: d.rng.Float64()}, nil
	}}

	values["count"] = &tengo.UserFunction{Name: "count", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(d.world.Count())}, nil
	}}

	values["spawn"] = &tengo.UserFunction{Name: "spawn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, okX := tengo.ToFloat64(args[0])
		y, okY := tengo.ToFloat64(args[1])
		if !okX || !okY {
			return nil, tengo.ErrInvalidArgumentType{Name: "position", Expected: "float", Found: args[0].TypeName()}
		}
		id := material.ID(strings.TrimSpace(objectAsString(args[2])))
		if !d.registry.IsSpawnable(id) {
			return nil, fmt.Errorf("spawn: material %q is not spawnable", id)
		}
		e := d.spawner.SpawnFrom(cp.Vector{X: x, Y: y}, id, component.SpawnWeather)
		*affected++
		return &tengo.Int{Value: int64(e)}, nil
	}}

	values["push_all"] = &tengo.UserFunction{Name: "push_all", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		fx, okX := tengo.ToFloat64(args[0])
		fy, okY := tengo.ToFloat64(args[1])
		if !okX || !okY {
			return nil, tengo.ErrInvalidArgumentType{Name: "force", Expected: "float", Found: args[0].TypeName()}
		}
		n := d.pushAll(cp.Vector{X: fx, Y: fy})
		*affected += n
		return &tengo.Int{Value: int64(n)}, nil
	}}

	values["direction"] = &tengo.UserFunction{Name: "direction", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: common.Direction(d.rng)}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
