package nick

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// BannedWords es la lista de subcadenas prohibidas en un nick.
// Se carga una vez al inicio y no se modifica después.
type BannedWords struct {
	words []string
}

// NewBannedWords arma la lista desde memoria (tests, CLI). Ignora vacíos.
func NewBannedWords(words ...string) *BannedWords {
	bw := &BannedWords{words: make([]string, 0, len(words))}
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			bw.words = append(bw.words, w)
		}
	}
	return bw
}

// LoadBannedWords lee una palabra por línea. Las líneas vacías y las que
// empiezan con '#' se ignoran. path vacío => lista vacía.
func LoadBannedWords(path string) (*BannedWords, error) {
	bw := &BannedWords{}
	if strings.TrimSpace(path) == "" {
		return bw, nil
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s != "" && !strings.HasPrefix(s, "#") {
			bw.words = append(bw.words, s)
		}
	}
	return bw, sc.Err()
}

// Contains reporta si nick contiene alguna palabra prohibida.
// Es contención de subcadena case-sensitive, no por palabra.
func (b *BannedWords) Contains(nick string) bool {
	if b == nil {
		return false
	}
	for _, w := range b.words {
		if strings.Contains(nick, w) {
			return true
		}
	}
	return false
}

// Len devuelve la cantidad de palabras cargadas.
func (b *BannedWords) Len() int {
	if b == nil {
		return 0
	}
	return len(b.words)
}
