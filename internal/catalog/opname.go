package catalog

import "github.com/ariefcatur/go-commerce.git/internal/apperr"

// applyAdjustment menghitung stok baru; adjustment boleh negatif, hasil tidak.
func applyAdjustment(stock, adjustment int) (int, error) {
	n := stock + adjustment
	if n < 0 {
		return 0, apperr.BusinessRulef("stock cannot be negative")
	}
	return n, nil
}
