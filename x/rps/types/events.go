package types

const (
	EventTypePlayer1Enrolled = "Player1Enrolled"
	EventTypePlayer2Enrolled = "Player2Enrolled"
	EventTypeMoveRevealed    = "MoveRevealed"
	EventTypeGameResolved    = "GameResolved"
	EventTypePlayer1Refunded = "Player1Refunded"
	EventTypePlayer2Refunded = "Player2Refunded"
	EventTypeWithdrawn       = "Withdrawn"
)

const (
	AttributeKeyCommitment = "commitment"
	AttributeKeyPlayer     = "player"
	AttributeKeyPlayer1    = "player1"
	AttributeKeyPlayer2    = "player2"
	AttributeKeyMove       = "move"
	AttributeKeyStake      = "stake"
	AttributeKeyDeadline   = "deadline"
	AttributeKeyOutcome    = "outcome"
	AttributeKeyWinner     = "winner"
	AttributeKeyAmount     = "amount"
)
