package expr

import (
	"crypto/sha256"
	"encoding/hex"
)

// SemanticHash returns "sha256:<hex>" of the binary form of the alpha-beta
// normal form of e. Judgmentally equal expressions share a hash.
func SemanticHash(e *Expr, opts ...NormalizeOption) (string, error) {
	data, err := EncodeBinary(AlphaNormalize(Normalize(e, opts...)))
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(sum[:]), nil
}
