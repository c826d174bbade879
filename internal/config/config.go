package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"doodlebox/internal/engine"
)

// Levels are authored in a fixed simulation space; hosts scale their
// viewport to it.
const (
	LevelWidth  = 1280.0
	LevelHeight = 720.0
)

type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p Position) Point() engine.Point { return engine.Point{X: p.X, Y: p.Y} }

type LevelCircle struct {
	Center   Position `yaml:"center"`
	Radius   float64  `yaml:"radius"`
	Static   bool     `yaml:"static"`
	Bindable bool     `yaml:"bindable"`
}

type LevelPolygon struct {
	Vertices []Position `yaml:"vertices"`
	Static   bool       `yaml:"static"`
	Bindable bool       `yaml:"bindable"`
}

// Level is the authorable initial scene: the marker ball, pre-placed
// shapes and flag positions, in a 1280x720 y-down space.
type Level struct {
	Name     string         `yaml:"name"`
	Ball     Position       `yaml:"ball"`
	Circles  []LevelCircle  `yaml:"circles,omitempty"`
	Polygons []LevelPolygon `yaml:"polygons,omitempty"`
	Flags    []Position     `yaml:"flags,omitempty"`
}

// DefaultLevel is the blank sandbox: flat ground, the ball, one flag.
func DefaultLevel() *Level {
	return &Level{
		Name: "sandbox",
		Ball: Position{X: 140, Y: 200},
		Polygons: []LevelPolygon{
			{
				Vertices: []Position{{X: 0, Y: 680}, {X: 1280, Y: 680}, {X: 1280, Y: 720}, {X: 0, Y: 720}},
				Static:   true,
				Bindable: true,
			},
		},
		Flags: []Position{{X: 1180, Y: 640}},
	}
}

func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lvl := &Level{}
	if err := yaml.Unmarshal(data, lvl); err != nil {
		return nil, err
	}
	return lvl, nil
}

func Save(path string, lvl *Level) error {
	data, err := yaml.Marshal(lvl)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (l *Level) Validate() error {
	for i, p := range l.Polygons {
		if len(p.Vertices) < 3 {
			return fmt.Errorf("polygon %d has %d vertices, need at least 3", i, len(p.Vertices))
		}
	}
	for i, c := range l.Circles {
		if c.Radius <= 0 {
			return fmt.Errorf("circle %d has radius %g, must be positive", i, c.Radius)
		}
	}
	return nil
}

// EngineConfig converts the level into the scene document the engine is
// created with.
func (l *Level) EngineConfig() engine.Config {
	cfg := engine.Config{BallPosition: l.Ball.Point()}
	for _, c := range l.Circles {
		cfg.Circles = append(cfg.Circles, engine.CircleConfig{
			Static:   c.Static,
			Bindable: c.Bindable,
			Center:   c.Center.Point(),
			Radius:   c.Radius,
		})
	}
	for _, p := range l.Polygons {
		pc := engine.PolygonConfig{Static: p.Static, Bindable: p.Bindable}
		for _, v := range p.Vertices {
			pc.Vertices = append(pc.Vertices, v.Point())
		}
		cfg.Polygons = append(cfg.Polygons, pc)
	}
	for _, f := range l.Flags {
		cfg.Flags = append(cfg.Flags, f.Point())
	}
	return cfg
}
