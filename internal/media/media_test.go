package media

import "testing"

func TestResolve(t *testing.T) {
	cases := []struct {
		filename string
		want     Kind
	}{
		{"beach.jpg", KindImage},
		{"beach.jpeg", KindImage},
		{"beach.png", KindImage},
		{"BEACH.JPG", KindImage},
		{"clip.mp4", KindVideo},
		{"clip.avi", KindVideo},
		{"clip.MOV", KindVideo},
		{"notes.txt", KindUnsupported},
		{"archive.tar.gz", KindUnsupported},
		{"noextension", KindUnsupported},
		{"", KindUnsupported},
		{"trick.jpg.exe", KindUnsupported},
	}

	for _, tc := range cases {
		if got := Resolve(tc.filename); got != tc.want {
			t.Errorf("Resolve(%q) = %v, want %v", tc.filename, got, tc.want)
		}
	}
}
