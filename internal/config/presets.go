package config

import "sort"

var Presets = map[string]*Level{
	"meadow": {
		Name: "meadow",
		Ball: Position{X: 120, Y: 200},
		Circles: []LevelCircle{
			{Center: Position{X: 640, Y: 300}, Radius: 30, Bindable: true},
		},
		Polygons: []LevelPolygon{
			{
				Vertices: []Position{{X: 0, Y: 680}, {X: 1280, Y: 680}, {X: 1280, Y: 720}, {X: 0, Y: 720}},
				Static:   true,
				Bindable: true,
			},
			{
				Vertices: []Position{{X: 300, Y: 680}, {X: 560, Y: 560}, {X: 560, Y: 680}},
				Static:   true,
			},
		},
		Flags: []Position{{X: 1180, Y: 640}, {X: 580, Y: 520}},
	},
	"gorge": {
		Name: "gorge",
		Ball: Position{X: 100, Y: 160},
		Circles: []LevelCircle{
			{Center: Position{X: 260, Y: 420}, Radius: 45, Bindable: true},
		},
		Polygons: []LevelPolygon{
			{
				Vertices: []Position{{X: 0, Y: 500}, {X: 520, Y: 500}, {X: 520, Y: 720}, {X: 0, Y: 720}},
				Static:   true,
				Bindable: true,
			},
			{
				Vertices: []Position{{X: 760, Y: 500}, {X: 1280, Y: 500}, {X: 1280, Y: 720}, {X: 760, Y: 720}},
				Static:   true,
				Bindable: true,
			},
		},
		Flags: []Position{{X: 1200, Y: 460}},
	},
	"spire": {
		Name: "spire",
		Ball: Position{X: 90, Y: 120},
		Circles: []LevelCircle{
			{Center: Position{X: 640, Y: 180}, Radius: 24, Bindable: true},
		},
		Polygons: []LevelPolygon{
			{
				Vertices: []Position{{X: 0, Y: 700}, {X: 1280, Y: 700}, {X: 1280, Y: 720}, {X: 0, Y: 720}},
				Static:   true,
				Bindable: true,
			},
			{
				Vertices: []Position{{X: 600, Y: 260}, {X: 680, Y: 260}, {X: 680, Y: 700}, {X: 600, Y: 700}},
				Static:   true,
				Bindable: true,
			},
			{
				Vertices: []Position{{X: 200, Y: 420}, {X: 420, Y: 420}, {X: 420, Y: 460}, {X: 200, Y: 460}},
				Static:   true,
			},
		},
		Flags: []Position{{X: 628, Y: 220}},
	},
}

func GetPreset(name string) *Level {
	lvl, ok := Presets[name]
	if !ok {
		return nil
	}
	return lvl
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
