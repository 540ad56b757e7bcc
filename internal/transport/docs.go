// package transport contains implementations to requirements on *message syntaxes*
// defined by http related RFCs, for HTTP/1.0 and HTTP/1.1 only.
//
// as of 2022.06, RFCs that were to define HTTP/1.1 (RFC753x) are obsoleted by:
//
//	HTTP Semantics (RFC9110)
//	HTTP Caching (RFC9111) and
//	HTTP/1.1 (RFC9112)
//
// the framing of a message body is decided once from the message head and
// never changes afterwards. see [ResolveWriter] and [ResolveReader] for the
// rules of each direction.
//
// net/http components are reused on the "semantics" part ([net/http.Header], etc.)
package transport
