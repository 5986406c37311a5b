// Package dns declares Route 53 A records pointing at a server's elastic IP.
//
// A record definition takes a ServerHandle and a domain and declares the
// bare and www records. The server can also declare one record per
// application domain itself, with the zone inferred from the registrable
// part of the application's first domain.
package dns
