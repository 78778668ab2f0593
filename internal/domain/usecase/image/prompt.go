package image

import (
	"strings"
	"unicode"
	"unicode/utf8"

	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
)

// MaxPromptLength is the longest prompt accepted, in characters
const MaxPromptLength = 500

const (
	qualityPrefix    = "High quality, detailed, photorealistic "
	styleSuffix      = ", sharp focus, well lit, professional"
	qualityMaxLength = 100
	styleMaxLength   = 120
)

var qualityKeywords = []string{
	"high quality", "detailed", "realistic", "beautiful", "professional",
	"photorealistic", "4k", "8k", "ultra detailed", "stunning", "vivid",
	"crisp", "sharp focus", "well lit", "artistic", "cinematic",
}

var styleKeywords = []string{"style", "art", "render", "illustration", "photo"}

var variationSuffixes = []string{
	", trending on artstation",
	", award winning photography",
	", concept art",
}

// ValidatePrompt rejects empty and oversized prompts
func ValidatePrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return errs.ErrPromptRequired
	}
	if utf8.RuneCountInString(prompt) > MaxPromptLength {
		return errs.ErrPromptTooLong
	}
	return nil
}

// EnhancePrompt cleans a prompt and adds quality and style modifiers when it has none
func EnhancePrompt(prompt string) string {
	enhanced := collapseSpaces(strings.Map(keepPromptRune, prompt))

	if enhanced != "" {
		enhanced = strings.ToUpper(enhanced[:1]) + enhanced[1:]
	}

	if !containsAny(enhanced, qualityKeywords) && len(enhanced) < qualityMaxLength {
		enhanced = qualityPrefix + enhanced
	}

	if !containsAny(enhanced, styleKeywords) && len(enhanced) < styleMaxLength {
		enhanced += styleSuffix
	}

	return enhanced
}

// Variations returns the enhanced prompt followed by its styled alternatives
func Variations(prompt string) []string {
	enhanced := EnhancePrompt(prompt)

	out := make([]string, 0, len(variationSuffixes)+1)
	out = append(out, enhanced)
	for _, suffix := range variationSuffixes {
		out = append(out, enhanced+suffix)
	}
	return out
}

// Suggestions returns hints for a prompt the provider refused; the first matching rule wins
func Suggestions(prompt string) []string {
	lower := strings.ToLower(prompt)

	switch {
	case strings.Contains(lower, "loin"):
		return []string{
			"Family dinner with meat",
			"Family eating together at table",
			"People enjoying a meal together",
		}
	case utf8.RuneCountInString(prompt) > 200:
		return []string{
			"Try: A short, focused description (under 100 words)",
			"Break complex requests into simpler parts",
		}
	case strings.Contains(lower, "nude") || strings.Contains(lower, "sex") || strings.Contains(lower, "explicit"):
		return []string{
			"Request contains prohibited content",
			"Please use family-friendly descriptions",
		}
	default:
		return []string{
			"Try: More specific and descriptive language",
			"Example: 'A red apple on a wooden table' instead of 'apple'",
			"Add details: 'A beautiful sunset over mountains with vibrant colors'",
		}
	}
}

// keepPromptRune maps every rune outside the allowed set to a space
func keepPromptRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return r
	case unicode.IsSpace(r):
		return ' '
	case strings.ContainsRune(".,!?-':;()[]/", r):
		return r
	default:
		return ' '
	}
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func containsAny(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
