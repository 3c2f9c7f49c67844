// Package capture implements the snapshot capture protocol: a bash routine,
// embedded in the binary and run inside the target session, that writes the
// session's variables, function names and aliases to a side channel, and the
// decoder that turns that stream back into snapshots.
//
// # Framing
//
// Every field is a netstring: the decimal byte length, a colon, the raw
// bytes and a trailing comma ("5:hello,"). Values may therefore contain any
// byte, newlines included, without escaping. Fields are grouped into
// records whose first field is a tag:
//
//	begin <label>
//	v <name> <flags> <value>                     scalar variable
//	a <name> <flags> <n> <elem>*n                indexed array
//	A <name> <flags> <n> (<key> <value>)*n       associative array
//	f <name>                                     function
//	l <name> <definition>                        alias
//	end <label>
//	status <n>                                   exit status of the script
//
// flags is "x" for exported variables and empty otherwise.
package capture
