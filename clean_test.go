package cnpv

import (
	"testing"
)

func TestCleanTable(t *testing.T) {

	tbl := makeTable(t,
		makeSeries(t, "estrato", []float64{1, 2, 0}, []bool{false, false, true}),
		makeSeries(t, "tipo_viv", []string{"casa", "apto", "otro"}, nil))

	clean, err := CleanTable(tbl)
	if err != nil {
		t.Fatal(err)
	}

	checkInt64Column(t, clean, "ESTRATO", []int64{1, 2, 0})

	miss := clean.Column("ESTRATO").Missing()
	if miss == nil || !miss[2] || miss[0] || miss[1] {
		t.Errorf("missing mask not preserved: %v", miss)
	}

	checkStringColumn(t, clean, "TIPO_VIV", []string{"casa", "apto", "otro"})
}

func TestCleanTableKeepsNonFloatColumns(t *testing.T) {

	col := makeSeries(t, "ESTRATO", []int64{1, 2}, nil)
	tbl := makeTable(t, col)

	clean, err := CleanTable(tbl)
	if err != nil {
		t.Fatal(err)
	}

	// An already-clean column passes through untouched.
	if clean.Column("ESTRATO") != col {
		t.Error("clean column was rebuilt")
	}
}

func TestCleanTableIdempotent(t *testing.T) {

	tbl := makeTable(t,
		makeSeries(t, "estrato", []float64{1, 2}, nil),
		makeSeries(t, "tipo_viv", []string{"casa", "apto"}, nil))

	once, err := CleanTable(tbl)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := CleanTable(once)
	if err != nil {
		t.Fatal(err)
	}

	for j, c := range once.Columns() {
		eq, i := c.AllEqual(twice.Columns()[j])
		if !eq {
			t.Errorf("column %q differs at %d after second clean", c.Name, i)
		}
		if c.Name != twice.Columns()[j].Name {
			t.Errorf("column name changed: %q vs %q", c.Name, twice.Columns()[j].Name)
		}
	}
}
