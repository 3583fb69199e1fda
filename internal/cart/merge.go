package cart

// Merge combines the server and local copies at login. Server lines come
// first and win on key collision; local-only lines follow in their order.
func Merge(server, local Cart) Cart {
	merged := Cart{lines: server.Lines()}
	for _, line := range local.lines {
		if merged.index(line.Key()) >= 0 {
			continue
		}
		merged.lines = append(merged.lines, line)
	}
	return merged
}
