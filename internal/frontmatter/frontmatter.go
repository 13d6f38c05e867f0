// Package frontmatter extracts the YAML metadata block embedded at the
// start of a free-text body. Two conventions exist in the source data: a
// leading "---" delimited block (notes) and a fenced ```yaml code block
// inside a markdown description (issues).
package frontmatter

import (
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Result holds the parsed metadata and the body text that follows it
type Result struct {
	Attributes map[string]interface{}
	Body       string
}

// Extract parses a leading "---" delimited YAML block. Returns nil when the
// block is absent, malformed, or parses to an empty mapping: the caller
// treats that as "no usable metadata", not as an error.
func Extract(body string) *Result {
	text := strings.TrimLeft(body, "\uFEFF\n\r")
	if !strings.HasPrefix(text, delimiter) {
		return nil
	}

	rest := text[len(delimiter):]
	if rest != "" && rest[0] != '\n' && !strings.HasPrefix(rest, "\r\n") {
		// Something like "----" or "--- title", not a front-matter fence
		return nil
	}

	end := strings.Index(rest, "\n"+delimiter)
	if end < 0 {
		return nil
	}

	block := rest[:end]
	remainder := rest[end+1+len(delimiter):]
	remainder = strings.TrimPrefix(remainder, "\r")
	remainder = strings.TrimPrefix(remainder, "\n")

	return parse(block, remainder)
}

// ExtractFenced parses a ```yaml fenced code block anywhere in a markdown
// body. Same contract as Extract: nil when nothing usable is found.
func ExtractFenced(body string) *Result {
	const fence = "```"

	start := strings.Index(body, fence+"yaml")
	if start < 0 {
		start = strings.Index(body, fence+"yml")
	}
	if start < 0 {
		return nil
	}

	block := body[start:]
	block = block[strings.Index(block, "\n")+1:]

	end := strings.Index(block, fence)
	if end < 0 {
		return nil
	}

	remainder := strings.TrimSpace(body[:start] + block[end+len(fence):])
	return parse(block[:end], remainder)
}

func parse(block, remainder string) *Result {
	attrs := make(map[string]interface{})
	if err := yaml.Unmarshal([]byte(block), &attrs); err != nil {
		return nil
	}
	if len(attrs) == 0 {
		return nil
	}
	return &Result{Attributes: attrs, Body: remainder}
}
