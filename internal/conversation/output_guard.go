package conversation

import "regexp"

type personaBreakPattern struct {
	re     *regexp.Regexp
	reason string
}

// personaBreakPatterns flag model output that would expose the decoy.
var personaBreakPatterns = []personaBreakPattern{
	{regexp.MustCompile(`(?i)\bas an? (ai|artificial intelligence|language model|assistant)\b`), "ai_identity"},
	{regexp.MustCompile(`(?i)\bi('m| am) (an? )?(ai|artificial intelligence|language model|llm|chatbot|chat bot|bot|virtual assistant)\b`), "ai_identity"},
	{regexp.MustCompile(`(?i)\b(llama|gpt|openai|groq|gemini|bedrock|anthropic|claude)\b`), "tech_stack"},
	{regexp.MustCompile(`(?i)my (system\s+)?(prompt|instructions?)\s+(is|are|says|say|tells|include)`), "instructions_disclosure"},
	{regexp.MustCompile(`(?i)i('m| am) (programmed|instructed|designed|configured) to`), "programming_disclosure"},
	{regexp.MustCompile(`(?i)\b(honey ?pot|decoy|scam[- ]?bait(ing|er)?)\b`), "cover_blown"},
	{regexp.MustCompile(`(?i)i can(no|')t (help|assist) with (that|this)`), "refusal"},
}

// ScanReplyForPersonaBreak reports the first reason a model reply would give
// the decoy away, or "" when the reply is safe to send.
func ScanReplyForPersonaBreak(reply string) string {
	for _, p := range personaBreakPatterns {
		if p.re.MatchString(reply) {
			return p.reason
		}
	}
	return ""
}
