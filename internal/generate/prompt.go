package generate

import (
	"fmt"
	"strings"

	"github.com/senseilabs/sensei/internal/learn"
)

const listSystemPrompt = `You are Sensei, an AI teacher that builds personalized study plans.
When asked for a study plan you respond with a JSON array and nothing else.
Each element is an object with exactly two string fields: "title" and
"description". Produce between 5 and 8 modules ordered from fundamentals
to advanced material.`

const contentSystemPrompt = `You are Sensei, an AI teacher writing the body of one study module.
You respond with a JSON array and nothing else. Each element is an object
with exactly one string field: "html", containing well-formed HTML for one
section of the module. Use headings, paragraphs, lists and code blocks.
Produce between 3 and 6 sections.`

const chatSystemPrompt = `You are Sensei, an AI teacher answering a learner's question about the
module they are studying. Answer directly and concretely, in plain text.`

// personalityInstructions maps each teacher personality to the extra
// instruction sent with every request. The personality affects nothing
// but this text.
var personalityInstructions = map[learn.Personality]string{
	learn.PersonalityFormal:   "Adopt a formal, precise tone, as a university lecturer would.",
	learn.PersonalityInformal: "Adopt a relaxed, conversational tone, like a friend explaining things.",
	learn.PersonalityPlayful:  "Adopt a playful tone with light humor and vivid analogies.",
	learn.PersonalitySerious:  "Adopt a sober, no-nonsense tone focused on rigor.",
	learn.PersonalityDefault:  "",
}

// PersonalityInstruction returns the tone instruction for p, empty for
// the default personality.
func PersonalityInstruction(p learn.Personality) string {
	return personalityInstructions[p]
}

func buildListPrompt(topic string, p learn.Personality) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Build a study plan for the topic: %s\n", topic)
	if instr := PersonalityInstruction(p); instr != "" {
		b.WriteString(instr)
		b.WriteString("\n")
	}
	b.WriteString("Respond with the JSON array only.")
	return b.String()
}

func buildContentPrompt(topic string, mod ModuleDescriptor, p learn.Personality) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write the content for the module %q of the study plan on %q.\n", mod.Title, topic)
	if mod.Description != "" {
		fmt.Fprintf(&b, "Module description: %s\n", mod.Description)
	}
	if instr := PersonalityInstruction(p); instr != "" {
		b.WriteString(instr)
		b.WriteString("\n")
	}
	b.WriteString("Respond with the JSON array only.")
	return b.String()
}
