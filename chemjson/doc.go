package chemjson

//Package chemjson reads and writes the JSON documents exchanged between
//the clash analysis and the programs around it. A snapshot carries one
//configuration of an atomic model: its atoms and coordinates, covalent bonds,
//an optional unit cell and the nonbonded pairs found by a geometry engine.
//A report carries the results of the analysis. Both can be gzip or
//z-standard compressed, which is decided by the file extension.
