package roster

// DefaultNames is the stock pool of player names.
var DefaultNames = []string{
	"Agatha Christie",
	"Alan Paton",
	"Alexander Solzhenitsyn",
	"Arthur Conan Doyle",
	"Aldous Huxley",
	"Anthony Trollope",
	"Baroness Orczy",
	"Brendan Behan",
	"Brian Moore",
	"Boris Pasternak",
	"Charles Dickens",
	"Charlotte Bronte",
	"Dorothy Parker",
	"Emile Zola",
	"Ernest Hemingway",
	"Frank O'Connor",
	"Geoffrey Chaucer",
	"George Eliot",
	"G. K. Chesterton",
	"Graham Greene",
	"Henry James",
	"James Joyce",
	"J. M. Synge",
	"J. R. R. Tolkien",
	"Jane Austen",
	"Leo Tolstoy",
	"Liam O'Flaherty",
	"Marcel Proust",
	"Mark Twain",
	"Oscar Wilde",
	"O. Henry",
	"Samuel Beckett",
	"Sean O'Casey",
	"William Shakespeare",
	"William Makepeace Thackeray",
	"W. B. Yeats",
	"Wilkie Collins",
}
