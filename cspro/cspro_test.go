package cspro

import (
	"strings"
	"testing"
)

const testDcf = `[Dictionary]
Version=CSPro 7.2
Label=Diccionario censo CNPV 2018
Name=CNPV2018
RecordTypeStart=1
RecordTypeLen=1

[Level]
Label=Nivel vivienda
Name=NIVEL_VIV

[IdItems]

[Item]
Label=Departamento
Name=U_DPTO
Start=2
Len=2

[ValueSet]
Label=Departamento
Name=U_DPTO_VS1
Value=5;Antioquia
Value=8;Atlantico

[Record]
Label=Registro de vivienda
Name=REGVIV
RecordTypeValue='1'

[Item]
Label=Estrato de la vivienda
Name=ESTRATO
Start=10
Len=1

[ValueSet]
Label=Estrato
Name=ESTRATO_VS1
Value=1;Estrato bajo
Value=2;Estrato medio
Value=0:9;Rango completo
Value='9';Sin informacion

[Record]
Label=Registro de personas
Name=REGPER
RecordTypeValue='5'

[Item]
Label=Edad en anios cumplidos
Name=P_EDAD
Start=10
Len=3
`

func TestParse(t *testing.T) {

	d, err := Parse(testDcf)
	if err != nil {
		t.Fatal(err)
	}

	if d.Name != "CNPV2018" {
		t.Errorf("dictionary name %q, want CNPV2018", d.Name)
	}
	if len(d.Records()) != 2 {
		t.Fatalf("got %d records, want 2", len(d.Records()))
	}

	rec := d.Record("REGVIV")
	if rec == nil {
		t.Fatal("no REGVIV record")
	}
	if rec.TypeValue != "1" {
		t.Errorf("REGVIV type value %q, want 1", rec.TypeValue)
	}
	if len(rec.Items) != 1 || rec.Items[0].Name != "ESTRATO" {
		t.Fatalf("unexpected REGVIV items: %+v", rec.Items)
	}
	if rec.Items[0].Start != 10 || rec.Items[0].Len != 1 {
		t.Errorf("ESTRATO position %d/%d, want 10/1", rec.Items[0].Start, rec.Items[0].Len)
	}
}

func TestColumnLabels(t *testing.T) {

	d, err := Parse(testDcf)
	if err != nil {
		t.Fatal(err)
	}

	labels, err := d.ColumnLabels("REGVIV")
	if err != nil {
		t.Fatal(err)
	}

	// Level id items are columns of every record.
	if labels["U_DPTO"] != "Departamento" {
		t.Errorf("U_DPTO label %q", labels["U_DPTO"])
	}
	if labels["ESTRATO"] != "Estrato de la vivienda" {
		t.Errorf("ESTRATO label %q", labels["ESTRATO"])
	}

	if _, err := d.ColumnLabels("REGXXX"); err == nil {
		t.Error("expected error for unknown record")
	}
}

func TestValueLabels(t *testing.T) {

	d, err := Parse(testDcf)
	if err != nil {
		t.Fatal(err)
	}

	labels, err := d.ValueLabels("REGVIV")
	if err != nil {
		t.Fatal(err)
	}

	vl := labels["ESTRATO"]
	if vl == nil {
		t.Fatal("no ESTRATO value labels")
	}
	if vl["1"] != "Estrato bajo" || vl["2"] != "Estrato medio" {
		t.Errorf("unexpected ESTRATO labels: %v", vl)
	}

	// Quoted codes are unquoted, range codes are skipped.
	if vl["9"] != "Sin informacion" {
		t.Errorf("quoted code: got %q", vl["9"])
	}
	if _, ok := vl["0:9"]; ok {
		t.Error("range code should not produce a label")
	}

	// An item with no value set contributes nothing.
	plabels, err := d.ValueLabels("REGPER")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := plabels["P_EDAD"]; ok {
		t.Error("P_EDAD has no value set, should have no labels")
	}
}

func TestParseRejectsNonDictionary(t *testing.T) {

	for _, text := range []string{
		"",
		"just some text\nwith lines\n",
		"[Record]\nName=REGVIV\n",
	} {
		if _, err := Parse(text); err == nil {
			t.Errorf("Parse(%q): expected error", text)
		}
	}
}

func TestParseWindowsLineEndings(t *testing.T) {

	d, err := Parse(strings.ReplaceAll(testDcf, "\n", "\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	if d.Record("REGVIV") == nil {
		t.Error("no REGVIV record with CRLF input")
	}
}

func TestParseBadItemPosition(t *testing.T) {

	text := "[Dictionary]\nName=X\n[Record]\nName=R\n[Item]\nName=I\nStart=ten\n"
	if _, err := Parse(text); err == nil {
		t.Error("expected error for non-numeric Start")
	}
}
