package repository

import (
    "errors"
    "fmt"
    "testing"

    "github.com/go-sql-driver/mysql"
    "github.com/stretchr/testify/assert"
)

func TestIsDuplicateKey(t *testing.T) {
    dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.c' for key 'uq_accounts_email'"}
    assert.True(t, isDuplicateKey(dup))
    assert.True(t, isDuplicateKey(fmt.Errorf("insert: %w", dup)), "wrapped errors are unwrapped")

    assert.False(t, isDuplicateKey(&mysql.MySQLError{Number: 1213, Message: "Deadlock found"}))
    assert.False(t, isDuplicateKey(errors.New("1062")), "error text alone is not a duplicate key")
    assert.False(t, isDuplicateKey(nil))
}
