// Package apikey genera y verifica las llaves de dispositivo (tablets de recepción).
//
// Formato de la llave en claro: "<prefijo>.<secreto>". El prefijo (hex) se guarda
// tal cual y sirve para buscar el registro; del secreto solo se guarda el hash bcrypt.
package apikey

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	prefixBytes = 6
	secretBytes = 32
	separator   = "."
)

// DefaultCost costo bcrypt usado en producción.
const DefaultCost = bcrypt.DefaultCost

// ErrMalformed la cadena no tiene el formato prefijo.secreto.
var ErrMalformed = errors.New("apikey: formato inválido")

// Key llave de dispositivo en claro.
type Key struct {
	Prefix string
	Secret string
}

// String devuelve la llave completa tal como se entrega al dispositivo.
func (k Key) String() string {
	return k.Prefix + separator + k.Secret
}

// Generate crea una llave aleatoria nueva.
func Generate() (Key, error) {
	p := make([]byte, prefixBytes)
	if _, err := rand.Read(p); err != nil {
		return Key{}, fmt.Errorf("apikey: prefijo: %w", err)
	}
	s := make([]byte, secretBytes)
	if _, err := rand.Read(s); err != nil {
		return Key{}, fmt.Errorf("apikey: secreto: %w", err)
	}
	return Key{
		Prefix: hex.EncodeToString(p),
		Secret: base64.RawURLEncoding.EncodeToString(s),
	}, nil
}

// Parse separa una llave recibida en prefijo y secreto.
// Un JWT (tres segmentos) no es una llave válida.
func Parse(raw string) (Key, error) {
	raw = strings.TrimSpace(raw)
	if strings.Count(raw, separator) != 1 {
		return Key{}, ErrMalformed
	}
	prefix, secret, _ := strings.Cut(raw, separator)
	if len(prefix) != prefixBytes*2 || secret == "" {
		return Key{}, ErrMalformed
	}
	if _, err := hex.DecodeString(prefix); err != nil {
		return Key{}, ErrMalformed
	}
	return Key{Prefix: prefix, Secret: secret}, nil
}

// Looks informa si la cadena tiene forma de llave de dispositivo.
func Looks(raw string) bool {
	_, err := Parse(raw)
	return err == nil
}

// Hash devuelve el hash bcrypt del secreto.
func Hash(secret string, cost int) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", fmt.Errorf("apikey: hash: %w", err)
	}
	return string(h), nil
}

// Verify compara el secreto contra el hash almacenado.
func Verify(hash, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
