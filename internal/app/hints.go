package app

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/samber/lo"
	"millionaire-game-service/internal/domain"
)

// fiftyFifty keeps the correct key plus one uniformly random wrong key.
func fiftyFifty(q *GameQuestion, rnd *rand.Rand) []string {
	wrong := lo.Filter(domain.AnswerKeys, func(key string, _ int) bool {
		return key != q.CorrectKey
	})
	keys := []string{q.CorrectKey, wrong[rnd.Intn(len(wrong))]}
	sort.Strings(keys)
	return keys
}

// audienceVotes simulates a vote distribution over all four keys. Every wrong
// key gets at most 20%, leaving the correct key at least 40% and a strict
// plurality; shares always sum to 100.
func audienceVotes(q *GameQuestion, rnd *rand.Rand) map[string]int {
	votes := make(map[string]int, len(domain.AnswerKeys))
	rest := 100
	for _, key := range domain.AnswerKeys {
		if key == q.CorrectKey {
			continue
		}
		share := rnd.Intn(21)
		votes[key] = share
		rest -= share
	}
	votes[q.CorrectKey] = rest
	return votes
}

var friendNames = []string{
	"Uncle Pete", "Marta", "Professor Lang", "Old Jim", "Sonia", "Captain Reyes",
}

// friendAdvice phrases a suggestion that names one of the four letters.
// The friend is right most of the time, not always.
func friendAdvice(q *GameQuestion, rnd *rand.Rand) string {
	key := q.CorrectKey
	if rnd.Intn(10) < 2 {
		key = domain.AnswerKeys[rnd.Intn(len(domain.AnswerKeys))]
	}
	name := friendNames[rnd.Intn(len(friendNames))]
	return fmt.Sprintf("%s is pretty sure the answer is %s", name, strings.ToUpper(key))
}
