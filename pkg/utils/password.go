package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword is the only place credentials get hashed; callers must never
// persist the plaintext.
func HashPassword(pw string) string {
	b, _ := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b)
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
