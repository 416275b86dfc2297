// Package assemble builds the combined document for a category: a table of
// contents with anchors, followed by each fragment's markdown verbatim in
// capture order. Optionally the combined document is sent through the
// text-improvement service; the improved version is written as a sibling
// artifact and never replaces the combined one.
package assemble

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/docweaver/docweaver"
	"github.com/google/uuid"
)

const tocAnchor = "table-of-contents"

// Assembler combines a category's fragments into one document.
type Assembler struct {
	Fragments docweaver.FragmentStore
	Documents docweaver.DocumentStore
	Improver  docweaver.Improver     // optional, enables --improve
	Tokens    docweaver.TokenCounter // optional, pre-improvement size estimate
	Activity  docweaver.ActivityLog  // optional
	History   docweaver.CaptureHistory
	Logger    *slog.Logger

	// Now is injectable so assembly output is reproducible in tests.
	Now func() time.Time
}

// Result reports what an assembly run produced.
type Result struct {
	Sections   int
	Skipped    []string // fragment names with no usable content
	Bytes      int
	TokenCount int // 0 when no counter is configured
	Improved   bool
	ImproveErr error // improvement failure; the combined document still exists
}

// Combine assembles the category's fragments into the combined document.
// With improve set, the combined document is also sent through the
// improvement service; failure there is reported in the result, not as an
// error, because the combined document has already been written.
func (a *Assembler) Combine(ctx context.Context, project, category string, improve bool) (*Result, error) {
	frags, err := a.Fragments.ListFragments(ctx, project, category)
	if err != nil {
		return nil, err
	}

	sections := buildSections(frags)
	result := &Result{Sections: len(sections)}
	for _, frag := range frags {
		if strings.TrimSpace(frag.Body) == "" {
			result.Skipped = append(result.Skipped, frag.Name)
			a.logger().Warn("skipping empty fragment", "name", frag.Name)
		}
	}

	if len(sections) == 0 {
		return nil, docweaver.Errorf(docweaver.ENOTFOUND, "no fragments to assemble in %s/%s", project, category)
	}

	combined := RenderCombined(project, category, sections, a.now())
	result.Bytes = len(combined)

	if err := a.Documents.WriteCombined(ctx, project, category, combined); err != nil {
		return nil, err
	}

	if improve {
		a.improve(ctx, project, category, combined, result)
	}

	a.record(ctx, project, category, result)
	return result, nil
}

// improve runs the combined document through the improvement service.
// Failures land in result.ImproveErr; the combined document is untouched.
func (a *Assembler) improve(ctx context.Context, project, category, combined string, result *Result) {
	if a.Improver == nil {
		result.ImproveErr = docweaver.Errorf(docweaver.EUNAVAILABLE, "no improvement service configured")
		return
	}

	if a.Tokens != nil {
		count, err := a.Tokens.CountTokens(ctx, combined)
		if err != nil {
			a.logger().Warn("token estimate failed", "err", err)
		} else {
			result.TokenCount = count
		}
	}

	improved, err := a.Improver.ImproveText(ctx, combined)
	if err != nil {
		result.ImproveErr = err
		a.logger().Warn("improvement failed, combined document kept", "err", err)
		return
	}

	if err := a.Documents.WriteImproved(ctx, project, category, improved); err != nil {
		result.ImproveErr = err
		return
	}
	result.Improved = true
}

// record appends an assembly block to the activity log and history catalog.
func (a *Assembler) record(ctx context.Context, project, category string, result *Result) {
	outcome := "ok"
	if result.ImproveErr != nil {
		outcome = "ok (improvement failed)"
	}

	rec := &docweaver.CaptureRecord{
		ID:        uuid.New().String(),
		Project:   project,
		Category:  category,
		Mode:      docweaver.ModeAssemble,
		Params:    fmt.Sprintf("sections=%d skipped=%d", result.Sections, len(result.Skipped)),
		Pages:     result.Sections,
		Bytes:     result.Bytes,
		Outcome:   outcome,
		CreatedAt: a.now(),
	}
	if result.ImproveErr != nil {
		rec.Error = result.ImproveErr.Error()
	}

	if a.Activity != nil {
		if err := a.Activity.Append(ctx, project, category, rec); err != nil {
			a.logger().Warn("activity log append failed", "err", err)
		}
	}
	if a.History != nil {
		if err := a.History.RecordCapture(ctx, rec); err != nil {
			a.logger().Warn("capture history write failed", "err", err)
		}
	}
}

// buildSections derives the section list from the ordered fragments.
// Fragments without usable content are dropped; ordinals are contiguous
// over the survivors so the table of contents never has gaps.
func buildSections(frags []*docweaver.Fragment) []*docweaver.Section {
	var sections []*docweaver.Section
	for _, frag := range frags {
		if strings.TrimSpace(frag.Body) == "" {
			continue
		}

		ordinal := len(sections) + 1
		title := frag.Title
		if title == "" {
			title = docweaver.DeriveTitle(frag.Body, frag.Name)
		}

		sections = append(sections, &docweaver.Section{
			Ordinal:  ordinal,
			Title:    title,
			Anchor:   SectionAnchor(ordinal, frag.Name),
			Fragment: frag,
		})
	}
	return sections
}

// SectionAnchor builds the anchor shared by a section's TOC entry and its
// heading. Explicit anchors survive markdown renderers that would otherwise
// disagree on heading-derived IDs.
func SectionAnchor(ordinal int, fragmentName string) string {
	name := strings.TrimSuffix(fragmentName, ".md")
	return fmt.Sprintf("%d-%s", ordinal, docweaver.Slugify(name))
}

// RenderCombined produces the combined document text.
func RenderCombined(project, category string, sections []*docweaver.Section, generated time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s/%s Combined Documentation\n\n", project, category)
	fmt.Fprintf(&b, "_Generated: %s_\n\n", generated.UTC().Format(time.RFC3339))

	fmt.Fprintf(&b, "<a id=%q></a>\n\n", tocAnchor)
	b.WriteString("## Table of Contents\n\n")
	for _, section := range sections {
		fmt.Fprintf(&b, "%d. [%s](#%s)\n", section.Ordinal, section.Title, section.Anchor)
	}
	b.WriteString("\n")

	for _, section := range sections {
		b.WriteString("---\n\n")
		fmt.Fprintf(&b, "<a id=%q></a>\n\n", section.Anchor)
		fmt.Fprintf(&b, "## %d. %s\n\n", section.Ordinal, section.Title)
		fmt.Fprintf(&b, "*Source: `%s`*\n\n", section.Fragment.SourceURL)
		b.WriteString(strings.TrimRight(section.Fragment.Body, "\n"))
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "[Back to Table of Contents](#%s)\n\n", tocAnchor)
	}

	return b.String()
}

func (a *Assembler) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

func (a *Assembler) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}
