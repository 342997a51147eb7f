package cnpv

/*

Package cnpv processes the data release of the 2018 Colombian national
population and housing census (CNPV 2018).

The release is distributed as one compressed archive per territory,
each holding nested archives of Stata data files, plus a separately
distributed CSPro data dictionary archive.  The pipeline walks the data
folder, decodes every territory archive into per-record-type tables
(dwellings, households, deaths, persons, and the georeference frame),
concatenates them into five unified tables with upper-cased column
names and nullable integer categorical columns, and finally rewrites
encoded categorical values into the human-readable labels defined by
the data dictionary.  The georeference frame carries no dictionary
schema and is never labeled.

Stata decoding is handled by github.com/kshedden/datareader, whose
Series type is also the column representation used throughout.  The
dictionary grammar is parsed by the cspro subpackage.

*/
