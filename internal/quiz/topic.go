package quiz

import (
	"fmt"
	"strings"
)

// Topic is the math subject a session is about.
type Topic string

const (
	TopicArithmetic    Topic = "Arithmetic"
	TopicAlgebra       Topic = "Algebra"
	TopicGeometry      Topic = "Geometry"
	TopicNumberSystems Topic = "Number Systems"
	TopicProbability   Topic = "Probability & Statistics"
	TopicTrigonometry  Topic = "Trigonometry"
	TopicCalculus      Topic = "Calculus"
)

var allTopics = []Topic{
	TopicArithmetic, TopicAlgebra, TopicGeometry, TopicNumberSystems,
	TopicProbability, TopicTrigonometry, TopicCalculus,
}

// Topics returns every topic in display order.
func Topics() []Topic {
	out := make([]Topic, len(allTopics))
	copy(out, allTopics)
	return out
}

// Valid reports whether t is one of the known topics.
func (t Topic) Valid() bool {
	for _, v := range allTopics {
		if t == v {
			return true
		}
	}
	return false
}

// Slug is the flag-friendly form, e.g. "number-systems".
func (t Topic) Slug() string {
	return slugify(string(t))
}

// ParseTopic matches a topic by name or slug, case-insensitively.
// "stats" and "probability" are accepted for Probability & Statistics.
func ParseTopic(s string) (Topic, error) {
	norm := slugify(s)
	switch norm {
	case "probability", "statistics", "stats":
		return TopicProbability, nil
	case "trig":
		return TopicTrigonometry, nil
	}
	for _, t := range allTopics {
		if norm == t.Slug() {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown topic %q", s)
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "&", " ")
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	}), "-")
}
