package ports

// OutputVerifier checks that files produced by an earlier run are present.
//
//go:generate mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type OutputVerifier interface {
	// VerifyOutputs reports whether every path in outputs exists below root.
	VerifyOutputs(root string, outputs []string) (bool, error)
}
