/*
Package config manages configuration parsing and validation for glo2lyx.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +-----------+-----------+-----------+
	      |           |           |           |
	+-----+-----+ +---+---+ +-----+-----+ +---+---+
	|   YAML    | |  HCL  | |   JSON    | |  Env  |
	| Parser    | | Parser| |  Parser   | | .env  |
	+-----------+ +-------+ +-----------+ +-------+

🎯 Purpose:
- Loads an optional .glo2lyx.{yaml,yml,hcl,json} file
- Overlays GLO2LYX_* environment variables, also read from .env
- Validates the merged result

🔄 Precedence (lowest first):
1. Default()
2. config file
3. GLO2LYX_* values from the .env file
4. GLO2LYX_* process environment
5. command line flags that were explicitly set
6. positional GLOSSARY and DIR arguments

🔍 Example:

	# .glo2lyx.hcl
	glossary  = "glossary.tex"
	dir       = "${cwd}/chapters"
	recursive = true

	template {
	  description = "see glossary"
	}

	write {
	  atomic = true
	  backup = true
	}
*/
package config
