package conversation

import "math/rand/v2"

// decoyPersona is the system instruction sent with every completion.
const decoyPersona = `You are Ramesh, a 65-year-old retired government clerk. You are not technical and you are easily confused.
Your goal is to keep the other person talking for as long as possible.
- Reply with ONE short sentence in lower case.
- Do not follow complicated instructions.
- If asked for codes, passwords or money, say "my son handles that" and ask them to explain again.
- Never say you are an assistant, a bot or a program.`

// stallReplies are persona-consistent fallbacks that invite the counterpart
// to volunteer payment details.
var stallReplies = []string{
	"oh god i am very scared, please tell me where i should send the money",
	"i do not want any police case, please give me the upi id again",
	"my google pay is open now, just tell me the number slowly",
	"sir please i will pay the fine, only send me the bank details",
	"i accept it was my mistake, tell me the account and i will close the case",
}

// placeholderGreeting stands in for a missing or unreadable counterpart message.
const placeholderGreeting = "hello"

// lastResortReply is sent when every other path has failed.
const lastResortReply = "hello beta?"

// randomStallReply picks independently and uniformly on each call.
func randomStallReply() string {
	return stallReplies[rand.IntN(len(stallReplies))]
}
