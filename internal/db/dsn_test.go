package db

import "testing"

func TestNormalizeDSN(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{" facturas.db ", "facturas.db"},
		{`"facturas.db"`, "facturas.db"},
		{"postgres://u:p@localhost:5432/facturas?sslmode=disable", "postgres://u:p@localhost:5432/facturas?sslmode=disable"},
		{"host=localhost user=u dbname=facturas", "host=localhost user=u dbname=facturas sslmode=disable"},
		{"host=localhost   user=u  dbname=facturas sslmode=require", "host=localhost user=u dbname=facturas sslmode=require"},
	}
	for _, c := range cases {
		if got := NormalizeDSN(c.in); got != c.want {
			t.Fatalf("NormalizeDSN(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsPostgres(t *testing.T) {
	if IsPostgres("facturas.db") {
		t.Fatalf("sqlite path misdetected as postgres")
	}
	if IsPostgres("file:test?mode=memory&cache=shared") {
		t.Fatalf("sqlite uri misdetected as postgres")
	}
	if !IsPostgres("postgres://u:p@h/db") {
		t.Fatalf("postgres url not detected")
	}
	if !IsPostgres("postgresql://u:p@h/db") {
		t.Fatalf("postgresql url not detected")
	}
	if !IsPostgres("host=localhost dbname=facturas") {
		t.Fatalf("key=value dsn not detected")
	}
}

func TestConnectAndMigrateSQLite(t *testing.T) {
	conn, err := ConnectAndMigrate("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	for _, table := range []string{"facturas", "abonos"} {
		if !conn.Migrator().HasTable(table) {
			t.Fatalf("missing table %s", table)
		}
	}
}
