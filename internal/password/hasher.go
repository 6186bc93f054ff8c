// Package password はパスワードの一方向ハッシュ化と照合を提供する。
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher はbcryptによるソルト付きハッシュ化と照合を提供する。
// コストパラメータ（ワークファクタ）は起動時の設定で調整可能。
type Hasher struct {
	cost int
}

// NewHasher はHasherを生成する。
// costがbcryptの有効範囲外の場合はbcrypt.DefaultCostを使用する。
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash は平文シークレットのbcryptハッシュを生成する。
// ソルトは内部で毎回生成されるため、同一入力でも出力は呼び出しごとに異なる。
// 失敗時はエラーを返し、呼び出し側で内部エラーとして扱う。
// 平文シークレットは決してログに出力しない。
func (h *Hasher) Hash(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(hashed), nil
}

// Verify は平文シークレットがハッシュと一致するかを返す。
func (h *Hasher) Verify(secret, hashedForm string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedForm), []byte(secret)) == nil
}
