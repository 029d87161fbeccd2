package domain

type ConversationContext struct {
	Day string
}
