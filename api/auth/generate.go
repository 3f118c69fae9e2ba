package auth

//go:generate swag init --dir ../../ --generalInfo internal/auth/http/router.go --output . --outputTypes go --parseInternal
