package services

import (
	cryptorand "crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"golang.org/x/crypto/argon2"
)

type argon2Params struct {
	time      uint32
	memory    uint32
	threads   uint8
	keyLength uint32
	saltLen   int
}

func loadArgon2Params() argon2Params {
	viper.SetDefault("argon2.time", 1)
	viper.SetDefault("argon2.memory", 64*1024)
	viper.SetDefault("argon2.threads", 4)
	viper.SetDefault("argon2.key_length", 32)
	viper.SetDefault("argon2.salt_length", 16)

	return argon2Params{
		time:      uint32(viper.GetInt("argon2.time")),
		memory:    uint32(viper.GetInt("argon2.memory")),
		threads:   uint8(viper.GetInt("argon2.threads")),
		keyLength: uint32(viper.GetInt("argon2.key_length")),
		saltLen:   viper.GetInt("argon2.salt_length"),
	}
}

// hashPassword returns an encoded argon2id hash:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
//
// The cost parameters travel with the hash so they can be tuned later
// without invalidating stored passwords.
func hashPassword(password string) (string, error) {
	p := loadArgon2Params()

	salt := make([]byte, p.saltLen)
	if _, err := cryptorand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, p.time, p.memory, p.threads, p.keyLength)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.memory, p.time, p.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash)), nil
}

// decodeHash parses an encoded hash. Hashes written before the parameters
// were encoded ("salt$hash") are read with the configured parameters.
func decodeHash(encoded string) (argon2Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")

	if len(parts) == 2 {
		salt, err := base64.StdEncoding.DecodeString(parts[0])
		if err != nil {
			return argon2Params{}, nil, nil, err
		}
		hash, err := base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			return argon2Params{}, nil, nil, err
		}
		return loadArgon2Params(), salt, hash, nil
	}

	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return argon2Params{}, nil, nil, fmt.Errorf("unrecognised hash format")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return argon2Params{}, nil, nil, err
	}
	if version != argon2.Version {
		return argon2Params{}, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	var p argon2Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return argon2Params{}, nil, nil, err
	}
	if p.time == 0 || p.threads == 0 {
		return argon2Params{}, nil, nil, fmt.Errorf("invalid argon2 parameters")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return argon2Params{}, nil, nil, err
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return argon2Params{}, nil, nil, err
	}
	return p, salt, hash, nil
}

func verifyPassword(password, hashedPassword string) bool {
	p, salt, hash, err := decodeHash(hashedPassword)
	if err != nil || len(hash) == 0 {
		return false
	}

	computedHash := argon2.IDKey([]byte(password), salt, p.time, p.memory, p.threads, uint32(len(hash)))
	return subtle.ConstantTimeCompare(hash, computedHash) == 1
}

var (
	dummyHashOnce sync.Once
	dummyHashVal  string
)

// dummyHash is verified against when no account matches a login, so the
// response takes as long as a wrong password would.
func dummyHash() string {
	dummyHashOnce.Do(func() {
		hash, err := hashPassword("shopwise-no-such-account")
		if err != nil {
			return
		}
		dummyHashVal = hash
	})
	return dummyHashVal
}
