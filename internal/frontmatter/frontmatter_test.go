package frontmatter

import "testing"

func TestExtract_Basic(t *testing.T) {
	body := "---\ntitle: Dark Mode\npriority: high\nplatforms: [ios, android]\n---\nSome remaining text"

	result := Extract(body)
	if result == nil {
		t.Fatal("Expected a result for valid front-matter")
	}

	if result.Attributes["title"] != "Dark Mode" {
		t.Errorf("Expected title 'Dark Mode', got %v", result.Attributes["title"])
	}
	if result.Attributes["priority"] != "high" {
		t.Errorf("Expected priority 'high', got %v", result.Attributes["priority"])
	}

	platforms, ok := result.Attributes["platforms"].([]interface{})
	if !ok || len(platforms) != 2 {
		t.Fatalf("Expected 2 platforms, got %v", result.Attributes["platforms"])
	}

	if result.Body != "Some remaining text" {
		t.Errorf("Unexpected remainder: %q", result.Body)
	}
}

func TestExtract_NoBlock(t *testing.T) {
	cases := []string{
		"",
		"just a plain note body",
		"title: Dark Mode\npriority: high",
		"--- not a fence",
		"----\ntitle: x\n----",
	}
	for _, body := range cases {
		if result := Extract(body); result != nil {
			t.Errorf("Expected nil for body %q, got %+v", body, result)
		}
	}
}

func TestExtract_UnterminatedBlock(t *testing.T) {
	if result := Extract("---\ntitle: Dark Mode\n"); result != nil {
		t.Errorf("Expected nil for unterminated block, got %+v", result)
	}
}

func TestExtract_MalformedYAML(t *testing.T) {
	if result := Extract("---\n\t{{bad yaml: [\n---\n"); result != nil {
		t.Errorf("Expected nil for malformed yaml, got %+v", result)
	}
}

func TestExtract_EmptyMapping(t *testing.T) {
	if result := Extract("---\n\n---\nbody"); result != nil {
		t.Errorf("Expected nil for empty mapping, got %+v", result)
	}
}

func TestExtract_LeadingNewlines(t *testing.T) {
	result := Extract("\n\n---\ntitle: X\n---\n")
	if result == nil {
		t.Fatal("Expected leading newlines to be tolerated")
	}
	if result.Attributes["title"] != "X" {
		t.Errorf("Expected title 'X', got %v", result.Attributes["title"])
	}
}

func TestExtractFenced_Basic(t *testing.T) {
	body := "## Feature request\n\n```yaml\ntitle: Export to CSV\nstatus: approved\n```\n\nMore context below."

	result := ExtractFenced(body)
	if result == nil {
		t.Fatal("Expected a result for fenced yaml block")
	}
	if result.Attributes["title"] != "Export to CSV" {
		t.Errorf("Expected title 'Export to CSV', got %v", result.Attributes["title"])
	}
	if result.Attributes["status"] != "approved" {
		t.Errorf("Expected status 'approved', got %v", result.Attributes["status"])
	}
}

func TestExtractFenced_NoBlock(t *testing.T) {
	cases := []string{
		"",
		"a markdown description with no code",
		"```\nplain fenced block\n```",
		"```yaml\nunterminated: true\n",
	}
	for _, body := range cases {
		if result := ExtractFenced(body); result != nil {
			t.Errorf("Expected nil for body %q, got %+v", body, result)
		}
	}
}

func TestExtractFenced_YmlAlias(t *testing.T) {
	result := ExtractFenced("```yml\ntitle: Y\n```")
	if result == nil {
		t.Fatal("Expected yml fence to be accepted")
	}
	if result.Attributes["title"] != "Y" {
		t.Errorf("Expected title 'Y', got %v", result.Attributes["title"])
	}
}
