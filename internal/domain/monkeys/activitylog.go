package monkeys

// MaxActivityLog es el tope del historial; al superarlo se descartan los más viejos.
const MaxActivityLog = 50

// AppendActivity devuelve un log nuevo (no comparte backing array con log)
// con e al final y recortado a MaxActivityLog.
func AppendActivity(log []ActivityEntry, e ActivityEntry) []ActivityEntry {
	out := make([]ActivityEntry, 0, len(log)+1)
	out = append(out, log...)
	out = append(out, e)
	return TrimLog(out)
}

// TrimLog conserva las últimas MaxActivityLog entradas.
func TrimLog(log []ActivityEntry) []ActivityEntry {
	if len(log) <= MaxActivityLog {
		return log
	}
	return log[len(log)-MaxActivityLog:]
}
