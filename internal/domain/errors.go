package domain

import "errors"

var (
	// ErrSessionNotFound is returned when no game session exists for the given id.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrGameAlreadyInProgress is returned when a user already has an unfinished game.
	ErrGameAlreadyInProgress = errors.New("game already in progress")
	// ErrInsufficientQuestions indicates the bank cannot supply a question for some level.
	ErrInsufficientQuestions = errors.New("not enough questions to fill the ladder")
	// ErrAlreadyFinished is returned when mutating a terminal session.
	ErrAlreadyFinished = errors.New("game already finished")
	// ErrTimeExpired is returned when the time budget ran out before the call;
	// the session is terminated as a timeout and the call is not evaluated.
	ErrTimeExpired = errors.New("game time expired")
	// ErrInvalidAnswerKey indicates an answer outside the a..d keys.
	ErrInvalidAnswerKey = errors.New("invalid answer key")
	// ErrHintAlreadyUsed is returned on a second use of the same hint kind.
	ErrHintAlreadyUsed = errors.New("hint already used")
	// ErrUnknownHint indicates an unrecognized hint kind on the wire.
	ErrUnknownHint = errors.New("unknown hint kind")
	// ErrBankNotFound indicates the question bank could not be loaded.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrQuestionText rejects a bank record without question text.
	ErrQuestionText = errors.New("question text is empty")
	// ErrQuestionLevel rejects a bank record whose level falls outside the ladder.
	ErrQuestionLevel = errors.New("question level outside the ladder")
)
