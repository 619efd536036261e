package edgesource

import "os"

func writeTextFile(path string, edges []Edge) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteEdges(f, edges); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
