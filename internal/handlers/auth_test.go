package handlers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestDuplicateEmailInsertIsDetected(t *testing.T) {
	// Signup maps unique-index violations to 409 instead of a generic db
	// error; pin the detection it relies on.
	err := mongo.WriteException{WriteErrors: mongo.WriteErrors{
		{Code: 11000, Message: "E11000 duplicate key error collection: users index: email_unique"},
	}}
	if !mongo.IsDuplicateKeyError(err) {
		t.Fatal("expected unique index violation to be detected as duplicate key")
	}

	other := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 121}}}
	if mongo.IsDuplicateKeyError(other) {
		t.Fatal("non-duplicate write errors must not map to conflict")
	}
}

func TestIssueUserTokenCarriesClaims(t *testing.T) {
	signed, err := issueUserToken("u123", "user@example.com", "test-secret", time.Minute)
	if err != nil {
		t.Fatalf("issueUserToken returned error: %v", err)
	}

	token, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("expected valid token, got err=%v valid=%v", err, token.Valid)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("expected map claims")
	}
	if claims["uid"] != "u123" {
		t.Fatalf("expected uid claim u123, got %v", claims["uid"])
	}
	if claims["email"] != "user@example.com" {
		t.Fatalf("expected email claim, got %v", claims["email"])
	}
}

func TestIssueUserTokenExpires(t *testing.T) {
	signed, err := issueUserToken("u123", "user@example.com", "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("issueUserToken returned error: %v", err)
	}

	_, err = jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err == nil {
		t.Fatal("expected expired token to fail parsing")
	}
}
