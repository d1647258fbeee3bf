package resume

import (
	"fmt"
	"sort"
	"strings"
)

// RenderText flattens the profile into a plain-text document for embedding.
// Section order mirrors the page layout so retrieved chunks read naturally.
func RenderText() string {
	p := Data()
	var b strings.Builder

	section := func(title string) {
		b.WriteString("\n# ")
		b.WriteString(title)
		b.WriteString("\n\n")
	}

	b.WriteString(p.Name)
	b.WriteString(" - ")
	b.WriteString(p.Tagline)
	b.WriteString("\n")
	b.WriteString(p.Location)
	b.WriteString("\n")
	b.WriteString(p.URL)
	b.WriteString("\n")

	section("About")
	b.WriteString(p.Summary)
	b.WriteString("\n\nPersonal philosophy: ")
	b.WriteString(p.PersonalPhilosophy)
	b.WriteString("\nValues and beliefs: ")
	b.WriteString(p.ValuesAndBeliefs)
	b.WriteString("\nSoft skills: ")
	b.WriteString(p.SoftSkills)
	b.WriteString("\nInterests: ")
	b.WriteString(p.Interests)
	b.WriteString("\n\nFun facts:\n")
	for _, f := range p.FunFacts {
		b.WriteString("- ")
		b.WriteString(f)
		b.WriteString("\n")
	}

	section("Skills")
	b.WriteString(strings.Join(p.Skills, ", "))
	b.WriteString("\n")
	writeSkills(&b, "Languages", p.Languages)
	writeSkills(&b, "Frameworks", p.Frameworks)
	writeSkills(&b, "Developer tools", p.DevTools)

	section("Work Experience")
	for _, w := range p.Work {
		fmt.Fprintf(&b, "%s at %s (%s, %s - %s)\n%s\n\n", w.Title, w.Company, w.Location, w.Start, w.End, w.Description)
	}

	section("Education")
	for _, e := range p.Education {
		fmt.Fprintf(&b, "%s, %s (%s - %s)\n%s\n\n", e.School, e.Degree, e.Start, e.End, e.Description)
	}

	section("Projects")
	for _, pr := range p.Projects {
		fmt.Fprintf(&b, "%s (%s)\n%s\nTechnologies: %s\n", pr.Title, pr.Dates, pr.Description, strings.Join(pr.Technologies, ", "))
		for _, l := range pr.Links {
			fmt.Fprintf(&b, "%s: %s\n", l.Type, l.Href)
		}
		b.WriteString("\n")
	}

	section("Contact")
	b.WriteString("Email: ")
	b.WriteString(p.Contact.Email)
	b.WriteString("\n")
	for _, name := range sortedSocialKeys(p.Contact.Social) {
		fmt.Fprintf(&b, "%s: %s\n", name, p.Contact.Social[name])
	}

	return b.String()
}

func writeSkills(b *strings.Builder, title string, skills []Skill) {
	if len(skills) == 0 {
		return
	}
	b.WriteString("\n")
	b.WriteString(title)
	b.WriteString(":\n")
	for _, s := range skills {
		b.WriteString("- ")
		b.WriteString(s.Name)
		if s.Description != "" {
			b.WriteString(": ")
			b.WriteString(s.Description)
		}
		b.WriteString("\n")
	}
}

func sortedSocialKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// stable output keeps embeddings deterministic between index runs
	sort.Strings(keys)
	return keys
}
