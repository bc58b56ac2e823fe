package utils

import "golang.org/x/crypto/bcrypt"

// DefaultResetPassword is the fixed plaintext an admin reset assigns. The
// admin panel shows it to the operator after a reset.
const DefaultResetPassword = "111111"

// HashPassword returns the bcrypt hash of the plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
