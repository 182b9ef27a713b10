package services

import (
	"regexp"
	"strings"

	"generate-story-lambda/application/ports/inbound"
	"generate-story-lambda/application/ports/outbound"
)

type storyTextProcessor struct {
	logger            outbound.LoggerPort
	codeFenceRegexp   *regexp.Regexp
	paragraphRegexp   *regexp.Regexp
	imageLineRegexp   *regexp.Regexp
	markdownImgRegexp *regexp.Regexp
	sceneRegexp       *regexp.Regexp
	bracketRegexp     *regexp.Regexp
	boldRegexp        *regexp.Regexp
	headerRegexp      *regexp.Regexp
}

func NewStoryTextProcessor(logger outbound.LoggerPort) inbound.StoryTextProcessorPort {
	return &storyTextProcessor{
		logger:            logger,
		codeFenceRegexp:   regexp.MustCompile("(?s)```.*?```"),
		paragraphRegexp:   regexp.MustCompile(`\n\s*\n`),
		imageLineRegexp:   regexp.MustCompile(`(?i)^\s*\*{0,2}image\s*(prompt|description)?\s*:?\*{0,2}\s*:?.*$`),
		markdownImgRegexp: regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`),
		sceneRegexp:       regexp.MustCompile(`(?i)\*{0,2}scene\s+\d+\s*:?\*{0,2}:?`),
		bracketRegexp:     regexp.MustCompile(`\[[^\][]*\]`),
		boldRegexp:        regexp.MustCompile(`\*\*(.*?)\*\*`),
		headerRegexp:      regexp.MustCompile(`^#{1,6}\s*`),
	}
}

// Clean turns raw model output into narration segments: one segment per
// paragraph, with scene headers, image prompts, bracketed stage directions
// and markdown stripped. Re-cleaning already-cleaned text is a no-op.
func (p *storyTextProcessor) Clean(rawText string) []string {
	text := p.codeFenceRegexp.ReplaceAllString(rawText, "\n\n")

	paragraphs := p.paragraphRegexp.Split(text, -1)
	segments := make([]string, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		cleaned := p.cleanParagraph(paragraph)
		if cleaned != "" {
			segments = append(segments, cleaned)
		}
	}

	return segments
}

func (p *storyTextProcessor) cleanParagraph(paragraph string) string {
	lines := strings.Split(paragraph, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if p.imageLineRegexp.MatchString(line) {
			continue
		}
		line = p.headerRegexp.ReplaceAllString(strings.TrimSpace(line), "")
		if line != "" {
			kept = append(kept, line)
		}
	}

	joined := strings.Join(kept, " ")
	joined = p.markdownImgRegexp.ReplaceAllString(joined, "")
	joined = p.sceneRegexp.ReplaceAllString(joined, "")
	joined = p.bracketRegexp.ReplaceAllString(joined, "")
	joined = p.boldRegexp.ReplaceAllString(joined, "$1")
	joined = strings.ReplaceAll(joined, "*", "")

	return strings.Join(strings.Fields(joined), " ")
}
