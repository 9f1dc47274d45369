package id

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type Generator struct{}

func New() *Generator {
	return &Generator{}
}

func (g *Generator) generate(prefix string) string {
	id, err := gonanoid.New(21)
	if err != nil {
		return prefix + "_fallback"
	}
	return prefix + "_" + id
}

func (g *Generator) PromptID() string {
	return g.generate("pp")
}

func (g *Generator) AnalyticsID() string {
	return g.generate("pa")
}

func (g *Generator) RequestID() string {
	return g.generate("pr")
}
