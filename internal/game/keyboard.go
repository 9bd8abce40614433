package game

// Keyboard folds a guess history into the best feedback seen per letter.
// A letter never downgrades: Correct beats Present beats Absent.
func Keyboard(history []GuessResult) map[string]Feedback {
	keys := make(map[string]Feedback)
	for _, r := range history {
		for i := 0; i < len(r.Guess) && i < WordLength; i++ {
			k := r.Guess[i : i+1]
			if old, ok := keys[k]; !ok || r.Feedback[i] > old {
				keys[k] = r.Feedback[i]
			}
		}
	}
	return keys
}
