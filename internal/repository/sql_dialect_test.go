package repository

import (
	"testing"
)

func TestBuildLikeConditionSQLite(t *testing.T) {
	condition, argCount := buildLikeCondition(nil, []string{"name", " ", "brand"})
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	if condition != "name LIKE ? OR brand LIKE ?" {
		t.Fatalf("unexpected condition: %s", condition)
	}
}

func TestBuildLikeConditionPostgresUsesILike(t *testing.T) {
	condition, _ := buildLikeConditionByDialect("postgres", []string{"name"})
	if condition != "name ILIKE ?" {
		t.Fatalf("unexpected condition: %s", condition)
	}
}

func TestDayExprByDialect(t *testing.T) {
	if got := dayExprByDialect("sqlite", "created_at"); got != "CAST(date(created_at) AS TEXT)" {
		t.Fatalf("sqlite day expr mismatch: %s", got)
	}
	if got := dayExprByDialect("postgres", "created_at"); got != "to_char(created_at, 'YYYY-MM-DD')" {
		t.Fatalf("postgres day expr mismatch: %s", got)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%jordan%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%jordan%" {
			t.Fatalf("args[%d] want %%jordan%% got %v", idx, arg)
		}
	}
}
