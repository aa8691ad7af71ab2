package identity

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"
	"os"
)

var ErrNoNamesLoaded = errors.New("name list is empty")

var nameList []string

// LoadNames reads the JSON name list file used by RandomName.
func LoadNames(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}

	nameList = names
	slog.Info("loaded name list", slog.Int("count", len(nameList)))
	return nil
}

func RandomName() (string, error) {
	if len(nameList) == 0 {
		return "", ErrNoNamesLoaded
	}
	return nameList[rand.Intn(len(nameList))], nil
}
