package git_test

import (
	"context"
	"testing"

	"github.com/CarterFendley/pit/internal/git"
	"github.com/CarterFendley/pit/internal/git/gittest"
	"github.com/CarterFendley/pit/internal/utils/errutils"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseStatus(t *testing.T) {
	raw := "A  file_staged.txt\n" +
		" M modified.txt\n" +
		"?? \"white   space.txt\"\n" +
		"?? \"\\\"quotes.txt\\\"\"\n" +
		"?? \"\\\\\\\"backslash_quotes.txt\\\\\\\"\"\n" +
		"?? dir/\n" +
		"?? file_untracked.txt\n" +
		"?? file_untracked.txt\n" +
		"R  old.txt -> new.txt\n" +
		"?? \"caf\\303\\251.txt\"\n" +
		"!! ignored_dir/\n"

	st, err := git.ParseStatus(raw)
	require.NoError(t, err)
	require.Equal(t, git.StatusMap{
		"A ": {{Path: "file_staged.txt"}},
		" M": {{Path: "modified.txt"}},
		"R ": {{Path: "old.txt", NewPath: "new.txt"}},
		"??": {
			{Path: `"quotes.txt"`},
			{Path: `\"backslash_quotes.txt\"`},
			{Path: "café.txt"},
			{Path: "dir/"},
			{Path: "file_untracked.txt"},
			{Path: "white   space.txt"},
		},
		"!!": {{Path: "ignored_dir/"}},
	}, st)
	require.Equal(t, []git.StatusCode{" M", "A ", "R ", "??", "!!"}, st.Codes())
	require.Equal(t, 10, st.Len())
}

func TestParseStatusEmpty(t *testing.T) {
	st, err := git.ParseStatus("")
	require.NoError(t, err)
	require.Empty(t, st)
}

func TestParseStatusPartiallyStagedRename(t *testing.T) {
	_, err := git.ParseStatus("RM old.txt -> new.txt\n")
	parseErr, ok := errutils.As[*git.ParseError](err)
	require.True(t, ok, "expected a *git.ParseError, got %T", err)
	require.Contains(t, parseErr.Msg, "this renamed file is partially staged")
	require.Contains(t, parseErr.Msg, `"new.txt"`)
}

func TestParseStatusErrors(t *testing.T) {
	for _, tt := range []struct {
		name string
		line string
	}{
		{"unterminated quote", `?? "unterminated.txt`},
		{"escaped closing quote", `?? "unterminated.txt\"`},
		{"pair on untracked", "?? a -> b"},
		{"pair on modified", " M a -> b"},
		{"pair on renamed and modified", "RM a -> b"},
		{"rename without destination", "R  a"},
		{"trailing data", "?? a b"},
		{"trailing data after pair", "R  a -> b c"},
		{"too short", "??"},
		{"invalid code", "XY a"},
		{"blank code", "   a"},
		{"missing separator", "??a.txt"},
		{"missing destination", `R  a -> `},
		{"bad escape", `?? "a\q"`},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := git.ParseStatus("A  ok.txt\n" + tt.line + "\n")
			require.Error(t, err)
			parseErr, ok := errutils.As[*git.ParseError](err)
			require.True(t, ok, "expected a *git.ParseError, got %T", err)
			require.Equal(t, tt.line, parseErr.Line)
		})
	}
}

func TestStatusMapFormatRoundTrip(t *testing.T) {
	codes := []git.StatusCode{"A ", " M", "M ", "MM", "D ", " D", "AM", "T ", "UU", "??", "!!", " R", "R "}
	pathRunes := []rune("abcXYZ019._-/ \"\\\t\né日")
	pathGen := rapid.StringOfN(rapid.RuneFrom(pathRunes), 1, 16, -1)

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 12).Draw(t, "n")
		var entries []git.StatusEntry
		for i := 0; i < n; i++ {
			code := rapid.SampledFrom(codes).Draw(t, "code")
			change := git.Change{Path: pathGen.Draw(t, "path")}
			if code.IsRename() {
				change.NewPath = pathGen.Draw(t, "newPath")
			}
			entries = append(entries, git.StatusEntry{Code: code, Change: change})
		}
		st := git.NewStatusMap(entries)

		reparsed, err := git.ParseStatus(st.Format())
		if err != nil {
			t.Fatalf("failed to reparse formatted status: %v\n%s", err, st.Format())
		}
		if !st.Equal(reparsed) {
			t.Fatalf("round trip mismatch:\nwant %v\ngot  %v", st, reparsed)
		}
		if reparsed.Format() != st.Format() {
			t.Fatalf("format is not stable")
		}
	})
}

func TestRepoStatus(t *testing.T) {
	repo := gittest.NewTempRepo(t)
	gittest.CommitFile(t, repo, "file_committed.txt", []byte("committed"))

	gittest.WriteIgnore(t, repo, "file_ignored.txt", "ignored_dir/")
	for _, name := range []string{
		"file_untracked.txt",
		"dir/file_one.txt",
		"dir/file_two.txt",
		"white   space.txt",
		`"quotes.txt"`,
		`\"backslash_quotes.txt\"`,
		"file_ignored.txt",
		"ignored_dir/file_one.txt",
		"ignored_dir/file_two.txt",
	} {
		gittest.CreateFile(t, repo, name, []byte(name))
	}
	gittest.AddFile(t, repo, gittest.CreateFile(t, repo, "file_staged.txt", []byte("staged")))

	st, err := repo.Status(context.Background())
	require.NoError(t, err)
	require.Equal(t, git.StatusMap{
		"A ": {{Path: "file_staged.txt"}},
		"??": {
			{Path: `"quotes.txt"`},
			{Path: ".gitignore"},
			{Path: `\"backslash_quotes.txt\"`},
			{Path: "dir/file_one.txt"},
			{Path: "dir/file_two.txt"},
			{Path: "file_untracked.txt"},
			{Path: "white   space.txt"},
		},
		"!!": {
			{Path: "file_ignored.txt"},
			{Path: "ignored_dir/file_one.txt"},
			{Path: "ignored_dir/file_two.txt"},
		},
	}, st)
}

func TestRepoStatusRenameAndDelete(t *testing.T) {
	repo := gittest.NewTempRepo(t)
	ctx := context.Background()
	gittest.CommitFile(t, repo, "white   space.txt", []byte("one"))
	gittest.CommitFile(t, repo, "two.txt", []byte("two"))

	_, err := repo.Git(ctx, "mv", "white   space.txt", "white   space.txt_new")
	require.NoError(t, err)
	_, err = repo.Git(ctx, "rm", "--quiet", "two.txt")
	require.NoError(t, err)

	st, err := repo.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, git.StatusMap{
		"R ": {{Path: "white   space.txt", NewPath: "white   space.txt_new"}},
		"D ": {{Path: "two.txt"}},
	}, st)
}
