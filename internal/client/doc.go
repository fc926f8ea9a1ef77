// Package client implements the authentication driver: given a server
// address, username, and secret, it runs the three-phase
// Chaum-Pedersen flow (register, challenge, answer) against a
// service.Service exposed over net/rpc.
package client
