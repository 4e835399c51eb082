// Package faq holds the static campus facts served by the FAQ operations.
package faq

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed faq.yaml
var defaultFacts []byte

// Facts are the fixed campus facts
type Facts struct {
	CampusName string    `yaml:"campus_name"`
	Library    Library   `yaml:"library"`
	Cafeteria  Cafeteria `yaml:"cafeteria"`
	Lunch      Lunch     `yaml:"lunch"`
}

type Library struct {
	Name         string `yaml:"name"`
	MondayFriday string `yaml:"monday_friday"`
	Saturday     string `yaml:"saturday"`
	Sunday       string `yaml:"sunday"`
	StudyRooms   string `yaml:"study_rooms"`
}

type Cafeteria struct {
	Name         string `yaml:"name"`
	Hours        string `yaml:"hours"`
	Breakfast    string `yaml:"breakfast"`
	Lunch        string `yaml:"lunch"`
	Dinner       string `yaml:"dinner"`
	WeekendHours string `yaml:"weekend_hours"`
}

type Lunch struct {
	ServiceType  string `yaml:"service_type"`
	Days         string `yaml:"days"`
	WeekendLunch string `yaml:"weekend_lunch"`
}

// Default returns the facts compiled into the binary
func Default() (*Facts, error) {
	return parse(defaultFacts)
}

// Load reads facts from path, falling back to the compiled-in facts when path
// is empty
func Load(path string) (*Facts, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read FAQ file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Facts, error) {
	var facts Facts
	if err := yaml.Unmarshal(data, &facts); err != nil {
		return nil, fmt.Errorf("failed to parse FAQ data: %w", err)
	}

	if facts.CampusName == "" || facts.Library.Name == "" || facts.Cafeteria.Name == "" {
		return nil, errors.New("FAQ data must name the campus, library and cafeteria")
	}
	return &facts, nil
}
