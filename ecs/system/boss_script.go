package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/voidarena/ecs/component"
	"github.com/milk9111/voidarena/prefabs"
)

// PatternScript asks a tengo script which attack the boss performs next.
// The script sees `cursor`, `health_fraction` and `pattern` and must set
// `attack` to one of the attack names.
type PatternScript struct {
	name     string
	compiled *tengo.Compiled
}

// LoadPatternScript compiles a script from prefabs/scripts.
func LoadPatternScript(name string) (*PatternScript, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("boss: empty pattern script name")
	}
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("boss: load script %s: %w", name, err)
	}
	return CompilePatternScript(name, src)
}

// CompilePatternScript compiles src under name.
func CompilePatternScript(name string, src []byte) (*PatternScript, error) {
	script := tengo.NewScript(src)
	_ = script.Add("cursor", 0)
	_ = script.Add("health_fraction", 1.0)
	_ = script.Add("pattern", []any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("boss: compile script %s: %w", name, err)
	}
	return &PatternScript{name: name, compiled: compiled}, nil
}

func (p *PatternScript) Name() string {
	if p == nil {
		return ""
	}
	return p.name
}

// Next runs the script and maps its answer onto the attack set.
func (p *PatternScript) Next(cursor int, healthFraction float64, pattern []component.AttackKind) (component.AttackKind, error) {
	if p == nil || p.compiled == nil {
		return 0, fmt.Errorf("nil pattern script")
	}
	names := make([]any, len(pattern))
	for i, k := range pattern {
		names[i] = k.String()
	}
	if err := p.compiled.Set("cursor", cursor); err != nil {
		return 0, err
	}
	if err := p.compiled.Set("health_fraction", healthFraction); err != nil {
		return 0, err
	}
	if err := p.compiled.Set("pattern", names); err != nil {
		return 0, err
	}
	if err := p.compiled.Run(); err != nil {
		return 0, err
	}
	if !p.compiled.IsDefined("attack") {
		return 0, fmt.Errorf("script %s did not set attack", p.name)
	}
	answer := strings.TrimSpace(p.compiled.Get("attack").String())
	kind, ok := component.ParseAttackKind(answer)
	if !ok {
		return 0, fmt.Errorf("script %s returned unknown attack %q", p.name, answer)
	}
	return kind, nil
}
