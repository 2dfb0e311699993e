package utils

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
)

func PrettyJson(in any) string {
	var buffer []byte
	var err error

	if reflect.TypeOf(in) != reflect.TypeOf([]byte{}) {
		buffer, err = json.Marshal(in)
		if err != nil {
			fmt.Println(err)
		}
	} else {
		buffer = in.([]byte)
	}

	var out bytes.Buffer
	err = json.Indent(&out, buffer, "", "\t")
	if err != nil {
		fmt.Println(err)
	}

	return out.String()
}

// HashJSON returns the hex-encoded sha256 of the value's JSON encoding.
// Struct field order makes the encoding deterministic for our payloads.
func HashJSON(value any) (string, error) {
	buffer, err := json.Marshal(value)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(buffer)
	return hex.EncodeToString(sum[:]), nil
}
