package save

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ProfileKey = "profile"
	StagesKey  = "stages"

	// historyLimit caps the stored run history; oldest runs drop first.
	historyLimit = 50
)

// Profile is the out-of-run progression shared by every run.
type Profile struct {
	Coins    int                    `yaml:"coins"`
	Upgrades PermanentUpgrades      `yaml:"permanent_upgrades"`
	Relics   map[RelicID]RelicState `yaml:"relics"`
	History  []RunRecord            `yaml:"history,omitempty"`

	// Stages is persisted under its own key.
	Stages []int `yaml:"-"`
}

// PermanentUpgrades are shop levels, not stat values.
type PermanentUpgrades struct {
	Health int `yaml:"health"`
	Speed  int `yaml:"speed"`
	Damage int `yaml:"damage"`
}

type RelicState struct {
	Purchased bool `yaml:"purchased"`
	Active    bool `yaml:"active"`
}

// RunRecord is one finished run.
type RunRecord struct {
	ID      string    `yaml:"id"`
	Stage   int       `yaml:"stage"`
	Wave    int       `yaml:"wave"`
	Score   int       `yaml:"score"`
	Kills   int       `yaml:"kills"`
	Victory bool      `yaml:"victory"`
	EndedAt time.Time `yaml:"ended_at"`
}

// NewProfile returns a fresh profile with stage 1 unlocked.
func NewProfile() *Profile {
	return &Profile{
		Relics: map[RelicID]RelicState{},
		Stages: []int{1},
	}
}

// LoadProfile reads the profile and stage list from store. Missing keys
// yield defaults.
func LoadProfile(store Store) (*Profile, error) {
	p := NewProfile()
	if store == nil {
		return p, nil
	}
	data, err := store.Load(ProfileKey)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("save: decode %s: %w", ProfileKey, err)
		}
	}
	if p.Relics == nil {
		p.Relics = map[RelicID]RelicState{}
	}

	data, err = store.Load(StagesKey)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return nil, err
	default:
		var stages []int
		if err := yaml.Unmarshal(data, &stages); err != nil {
			return nil, fmt.Errorf("save: decode %s: %w", StagesKey, err)
		}
		p.Stages = normalizeStages(stages)
	}
	return p, nil
}

// Save writes the profile and stage list to store.
func (p *Profile) Save(store Store) error {
	if store == nil {
		return nil
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("save: encode %s: %w", ProfileKey, err)
	}
	if err := store.Save(ProfileKey, data); err != nil {
		return err
	}
	stages, err := yaml.Marshal(normalizeStages(p.Stages))
	if err != nil {
		return fmt.Errorf("save: encode %s: %w", StagesKey, err)
	}
	return store.Save(StagesKey, stages)
}

func normalizeStages(stages []int) []int {
	out := []int{1}
	for _, s := range stages {
		if s >= 1 && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return out
}

// StageUnlocked reports whether stage can be started.
func (p *Profile) StageUnlocked(stage int) bool {
	return stage == 1 || slices.Contains(p.Stages, stage)
}

// UnlockStage adds stage and reports whether it was new.
func (p *Profile) UnlockStage(stage int) bool {
	if stage < 1 || p.StageUnlocked(stage) {
		return false
	}
	p.Stages = normalizeStages(append(p.Stages, stage))
	return true
}

// RecordRun appends r to the history.
func (p *Profile) RecordRun(r RunRecord) {
	p.History = append(p.History, r)
	if n := len(p.History); n > historyLimit {
		p.History = slices.Clone(p.History[n-historyLimit:])
	}
}
