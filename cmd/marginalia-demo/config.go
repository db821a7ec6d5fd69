package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/marginalia/field"
)

const sampleText = `Marginalia are notes written in the margins of a text.

Select some words with shift+arrows or a mouse drag, then press ctrl+k
to attach a comment. With nothing selected the comment is pinned at the
cursor. Click a highlighted span to focus its comment.

tab cycles focus, ctrl+t hides or shows the focused comment, ctrl+d
deletes it, ctrl+c quits.`

type demoConfig struct {
	Location        string             `yaml:"location"`
	Author          string             `yaml:"author"`
	CommentsEnabled *bool              `yaml:"comments_enabled"`
	LineNumbers     bool               `yaml:"line_numbers"`
	Text            string             `yaml:"text"`
	ValueFile       string             `yaml:"value_file"`
	SidebarWidth    int                `yaml:"sidebar_width"`
	EntityTypes     []entityTypeConfig `yaml:"entity_types"`
}

type entityTypeConfig struct {
	Type        string `yaml:"type"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
	Color       string `yaml:"color"`
}

func defaultConfig() demoConfig {
	return demoConfig{
		Location:     "demo.body",
		Author:       os.Getenv("USER"),
		Text:         sampleText,
		SidebarWidth: 34,
	}
}

func loadConfig(path string) (demoConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return demoConfig{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return demoConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.SidebarWidth <= 0 {
		cfg.SidebarWidth = defaultConfig().SidebarWidth
	}
	return cfg, nil
}

func (c demoConfig) commentsEnabled() bool {
	return c.CommentsEnabled == nil || *c.CommentsEnabled
}

// value returns the stored content to load, if any.
func (c demoConfig) value() (string, error) {
	if c.ValueFile == "" {
		return "", nil
	}
	data, err := os.ReadFile(c.ValueFile)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read value file: %w", err)
	}
	return string(data), nil
}

func (c demoConfig) entityTypes() []field.EntityType {
	out := make([]field.EntityType, 0, len(c.EntityTypes))
	for _, et := range c.EntityTypes {
		t := field.EntityType{Type: et.Type, Label: et.Label, Description: et.Description}
		if et.Color != "" {
			st := lipgloss.NewStyle().Foreground(lipgloss.Color(et.Color))
			t.Style = &st
		}
		out = append(out, t)
	}
	return out
}

func demoPlugins() *field.Plugins {
	link := lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("39"))
	return field.NewPlugins().
		Register(field.EntityType{Type: "LINK", Label: "Link", Description: "Hyperlink", Style: &link})
}
