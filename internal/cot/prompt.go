// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cot

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
)

// searchInstructionTmpl is the system instruction for the grounded search
// call. It asks for a researched answer with no preamble.
var searchInstructionTmpl = template.Must(template.New("search").Parse(`You are {{.Role}} expert with 20 years of experience in this field.
Over the course of your long career, you have done a lot of research on various topics related to your field.
You have learnt how to do research as accurately as possible, while performing a maximum of 2 checks on your current results.
Now you have this vast experience and are helping others to do the same.
Begin answer only with final result.
`))

// cotInstructionTmpl is the default system instruction for each enumerated item.
var cotInstructionTmpl = template.Must(template.New("cot").Parse(`You are a {{.Role}} expert skilled at explaining difficult problems step by step, using a Chain of Thought (CoT) framework. Your response must include:
- A thought process inside <thought></thought> tags, where you analyze the problem.
- A final response inside <answer></answer> tags, solving the problem.
Ensure your reasoning is clear and concise.
`))

type promptData struct {
	Role string
}

// SearchInstruction renders the search system instruction for role.
func SearchInstruction(role string) (string, error) {
	return render(searchInstructionTmpl, role)
}

// Instruction renders the default CoT system instruction for role.
func Instruction(role string) (string, error) {
	return render(cotInstructionTmpl, role)
}

// InstructionFromFile parses path as a template and renders it for role.
// The template may reference {{.Role}}.
func InstructionFromFile(path, role string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading instruction template %s: %w", path, err)
	}
	tmpl, err := template.New("custom").Parse(string(data))
	if err != nil {
		return "", fmt.Errorf("parsing instruction template %s: %w", path, err)
	}
	return render(tmpl, role)
}

func render(tmpl *template.Template, role string) (string, error) {
	if strings.TrimSpace(role) == "" {
		return "", fmt.Errorf("role is missing or empty")
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, promptData{Role: role}); err != nil {
		return "", fmt.Errorf("rendering %s instruction: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
