package achievement

import "errors"

var (
	errNilConfig      = errors.New("config cannot be nil")
	errNilInput       = errors.New("input and unlock cannot be nil")
	errEmptyCharacter = errors.New("character ID cannot be empty")
	errEmptyKey       = errors.New("achievement key cannot be empty")
)

func validateUnlock(input *InsertUnlockInput) error {
	if input == nil || input.Unlock == nil {
		return errNilInput
	}
	if input.Unlock.CharacterID == "" {
		return errEmptyCharacter
	}
	if input.Unlock.AchievementKey == "" {
		return errEmptyKey
	}
	return nil
}
