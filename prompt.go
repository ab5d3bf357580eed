package diaclass

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxChars is the default content budget per document, in characters.
const DefaultMaxChars = 15000

// SystemPrompt is sent as the system message by providers that take one.
const SystemPrompt = "You are an expert documentation analyst."

const promptTemplate = "The following documentation content is provided from a MkDocs file. " +
	"Please analyze the content and classify it into the Diátaxis documentation framework quadrants:\n" +
	"    - Explanation\n" +
	"    - Tutorial\n" +
	"    - How-To\n" +
	"    - Reference\n\n" +
	"For each quadrant, provide a percentage fit as an integer between 0 and 100 (without the '%' sign) " +
	"that indicates how much the content aligns with that quadrant. Also, indicate the most dominant quadrant. " +
	"Return the output in JSON format with keys 'dominant', 'explanation', 'tutorial', 'how_to', and 'reference'. " +
	"In the returned output in JSON, ensure the values of 'dominant' is only one of the following, case-sensitive values: " +
	"'explanation', 'tutorial', 'how_to', and 'reference'.\n\n" +
	"Here is the documentation content:\n\n" +
	"{content}\n\n" +
	"Ensure your response is a valid JSON object."

// BuildPrompt embeds content in the classification prompt.
func BuildPrompt(content string) string {
	return strings.Replace(promptTemplate, "{content}", content, 1)
}

// Truncate keeps the first max characters of content. It reports whether
// anything was dropped. A max of zero or less disables truncation.
func Truncate(content string, max int) (string, bool) {
	if max <= 0 || utf8.RuneCountInString(content) <= max {
		return content, false
	}
	n := 0
	for i := range content {
		if n == max {
			return content[:i], true
		}
		n++
	}
	return content, false
}
