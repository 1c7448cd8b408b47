package db

// FixtureCaption is a caption in the bootstrap set. MemeIDs are positions in
// FixtureMemes counted from 1, which equal the meme ids on a freshly reset schema.
type FixtureCaption struct {
	Text    string
	MemeIDs []uint
}

// FixtureMemes is the static meme reference set, in insertion order.
var FixtureMemes = []string{
	"skinner.jpg",
	"think.jpg",
	"what.jpg",
	"grudank.jpeg",
	"grugun.jpg",
	"megamind.webp",
	"spongebob.jpg",
	"OhnoCat.jpg",
	"eyes.jpg",
	"duck.jpg",
	"astonished.jpg",
	"beluga.jpg",
	"chihuahua.jpg",
	"cone.jpg",
	"cutie.jpg",
	"drunkduck.jpg",
	"flipflop.jpg",
	"shrek.jpg",
	"willsmith.jpg",
}

var FixtureCaptions = []FixtureCaption{
	{Text: "When you realize you've been reading the instructions wrong the entire time.", MemeIDs: []uint{1}},
	{Text: "When someone says \"We need to talk.\"", MemeIDs: []uint{1}},
	{Text: "When you realize you left your phone at home.", MemeIDs: []uint{1}},
	{Text: "When your boss says you have to work late.", MemeIDs: []uint{2}},
	{Text: "When you find out it's all-you-can-eat buffet night.", MemeIDs: []uint{2}},
	{Text: "When you wake up and realize it's Saturday.", MemeIDs: []uint{2}},
	{Text: "When you meet someone who loves the same show as you.", MemeIDs: []uint{3}},
	{Text: "When you realize you've been talking to someone for hours and have no idea what they said.", MemeIDs: []uint{3}},
	{Text: "When you see a cute animal video online and realize you've been watching for hours.", MemeIDs: []uint{3}},
	{Text: "When you see a spider in your room.", MemeIDs: []uint{4}},
	{Text: "When you find out your favorite restaurant is closing down.", MemeIDs: []uint{4}},
	{Text: "When you hear a weird noise in the middle of the night.", MemeIDs: []uint{4}},
	{Text: "When you open a text from your ex.", MemeIDs: []uint{5}},
	{Text: "When you see your reflection after a long night.", MemeIDs: []uint{5}},
	{Text: "When you find out your favorite snack is sold out.", MemeIDs: []uint{5}},
	{Text: "When you pretend to understand the lecture but you're actually lost.", MemeIDs: []uint{6}},
	{Text: "When you realize you left your keys inside the car.", MemeIDs: []uint{6}},
	{Text: "When your mom calls you by your full name.", MemeIDs: []uint{6}},
	{Text: "When you realize it's already December.", MemeIDs: []uint{7}},
	{Text: "When you try to eat healthy but junk food exists.", MemeIDs: []uint{7}},
	{Text: "When you find a parking spot on the first try.", MemeIDs: []uint{7}},
	{Text: "When you come up with the perfect comeback hours later.", MemeIDs: []uint{8}},
	{Text: "When you realize you've been using a word wrong your whole life.", MemeIDs: []uint{8}},
	{Text: "When you solve a problem that's been bothering you for days.", MemeIDs: []uint{8}},
	{Text: "When someone explains math to you and you still don't get it.", MemeIDs: []uint{9}},
	{Text: "When you see your ex with someone else.", MemeIDs: []uint{9}},
	{Text: "When you realize you sent a text to the wrong person.", MemeIDs: []uint{9}},
	{Text: "When you get caught talking to yourself.", MemeIDs: []uint{10}},
	{Text: "When you realize you've been muted on the conference call the whole time.", MemeIDs: []uint{10}},
	{Text: "When you see a hilarious meme but can't laugh out loud.", MemeIDs: []uint{10}},
	{Text: "When you realize you wore your glasses upside down all day and no one told you.", MemeIDs: []uint{11}},
	{Text: "When you try to read without your glasses and suddenly everything is a Picasso.", MemeIDs: []uint{11}},
	{Text: "When you finally understand a joke from last year.", MemeIDs: []uint{11}},
	{Text: "When you catch your crush staring at you, but it's actually someone behind you.", MemeIDs: []uint{11}},
	{Text: "When you realize you've been pronouncing a word wrong your whole life.", MemeIDs: []uint{12}},
	{Text: "When you open the fridge and remember you forgot to buy groceries.", MemeIDs: []uint{12}},
	{Text: "When you realize your meeting started five minutes ago.", MemeIDs: []uint{12}},
	{Text: "When you wake up from a nap and can't tell if it's 7 AM or PM.", MemeIDs: []uint{13}},
	{Text: "When you see your reflection and wonder why no one told you about the spinach in your teeth.", MemeIDs: []uint{13}},
	{Text: "When you finally notice the \"Kick Me\" sign on your back.", MemeIDs: []uint{13}},
	{Text: "When you try to act cool but trip over your own feet.", MemeIDs: []uint{14}},
	{Text: "When you realize you've been talking to someone for hours.", MemeIDs: []uint{14}},
	{Text: "When you find out your flight is delayed.", MemeIDs: []uint{14}},
	{Text: "When you realize you're the only one who dressed up for the party.", MemeIDs: []uint{15}},
	{Text: "When you see your pet doing something cute.", MemeIDs: []uint{15}},
	{Text: "When you get the last slice of pizza.", MemeIDs: []uint{15}},
	{Text: "When you wake up after a night out and check your phone.", MemeIDs: []uint{16}},
	{Text: "When you see your friend doing something embarrassing.", MemeIDs: []uint{16}},
	{Text: "When you get home and realize you forgot to lock the door.", MemeIDs: []uint{16}},
	{Text: "When you get a notification that your package has arrived.", MemeIDs: []uint{17}},
	{Text: "When you discover the hidden fees after booking your vacation.", MemeIDs: []uint{17}},
	{Text: "When someone says \"fun fact\" and your brain explodes with knowledge.", MemeIDs: []uint{17}},
	{Text: "When you realize you've been using the wrong charger for your phone.", MemeIDs: []uint{18}},
	{Text: "When you try to be productive but end up watching TV all day.", MemeIDs: []uint{18}},
	{Text: "When you finally get home after a long day.", MemeIDs: []uint{18}},
	{Text: "When you try to find your way in a new city without GPS.", MemeIDs: []uint{19}},
	{Text: "When you remember you left the oven on.", MemeIDs: []uint{19}},
	{Text: "When you see someone you know but can't remember their name.", MemeIDs: []uint{19}},

	// shared between two memes; 0 does not name a meme and is dropped on load
	{Text: "When you accidentally send a text to the wrong person and they reply.", MemeIDs: []uint{0, 8}},
	{Text: "When you find out your favorite show got cancelled.", MemeIDs: []uint{0, 4}},
	{Text: "When you remember you left the stove on.", MemeIDs: []uint{0, 18}},
	{Text: "Me, trying to comprehend how I spent $100 at Target.\"", MemeIDs: []uint{1, 4}},
	{Text: "When you see a cute animal video online.", MemeIDs: []uint{2, 14}},
	{Text: "When you're half asleep and hear a noise.", MemeIDs: []uint{3, 16}},
	{Text: "When your crush walks by and you try to act natural.", MemeIDs: []uint{3, 9}},
	{Text: "When you realize you left the water running and your house is flooded.", MemeIDs: []uint{0, 18}},
	{Text: "When you discover your favorite shirt has a stain.", MemeIDs: []uint{4, 0}},
	{Text: "When you find out you missed the bus.", MemeIDs: []uint{1, 16}},
	{Text: "When you realize you forgot your friend's birthday.", MemeIDs: []uint{3, 8}},
	{Text: "When you see the bill after a fancy dinner.", MemeIDs: []uint{9, 3}},
	{Text: "When your boss catches you looking at memes during work.", MemeIDs: []uint{5, 9}},
	{Text: "When you see your crush and accidentally walk into a pole.", MemeIDs: []uint{10, 13}},
	{Text: "When your pet does something hilarious but no one is around to see it.", MemeIDs: []uint{14, 2}},
	{Text: "When you try to stay awake during a boring meeting.", MemeIDs: []uint{15, 17}},
	{Text: "When you hear your favorite song on the radio.", MemeIDs: []uint{6, 14}},
	{Text: "When your friend starts telling an embarrassing story about you.", MemeIDs: []uint{12, 15}},
	{Text: "When you realize you've been walking in the wrong direction for ten minutes.", MemeIDs: []uint{11, 4}},
	{Text: "When your parents use your childhood nickname in public.", MemeIDs: []uint{0, 9}},
	{Text: "When you find a long-lost item under your bed.", MemeIDs: []uint{16, 0}},
	{Text: "When you realize you've been pronouncing your coworker's name wrong for years.", MemeIDs: []uint{11, 7}},
	{Text: "When your phone battery dies at the worst possible moment.", MemeIDs: []uint{8, 17}},
	{Text: "When you see a hilarious meme and try not to laugh out loud in public.", MemeIDs: []uint{9, 2}},
	{Text: "When you realize you sent a text to the wrong person and they reply.", MemeIDs: []uint{0, 8}},
	{Text: "When you realize it's Monday tomorrow.", MemeIDs: []uint{4, 9}},
	{Text: "When you try to unlock your phone but it doesn't recognize your face.", MemeIDs: []uint{17, 9}},
	{Text: "When you realize you missed your favorite show's new episode.", MemeIDs: []uint{0, 4}},
	{Text: "When you discover your pet has been hiding your socks.", MemeIDs: []uint{14, 3}},
	{Text: "When you realize you have to wake up early tomorrow.", MemeIDs: []uint{4, 9}},
	{Text: "When you see your favorite snack on sale.", MemeIDs: []uint{6, 14}},
	{Text: "When you finally finish a project you've been working on for weeks.", MemeIDs: []uint{7, 5}},
	{Text: "When you see someone trip but try not to laugh.", MemeIDs: []uint{13, 15}},
	{Text: "When you're late and every light is green.", MemeIDs: []uint{18, 16}},
	{Text: "When your friend makes an embarrassing comment.", MemeIDs: []uint{12, 10}},
	{Text: "When you get a call from an unknown number.", MemeIDs: []uint{17, 5}},
	{Text: "When you see your favorite character die in a show.", MemeIDs: []uint{0, 11}},
	{Text: "When you realize you've been talking on mute during a meeting.", MemeIDs: []uint{9, 7}},
	{Text: "When you find money in your old jacket pocket.", MemeIDs: []uint{16, 0}},
	{Text: "When your computer crashes right before you save your work.", MemeIDs: []uint{8, 17}},
	{Text: "When you realize you left the car running.", MemeIDs: []uint{18, 5}},
	{Text: "When you hear a funny joke and can't stop laughing.", MemeIDs: []uint{14, 2}},
	{Text: "When you discover your sibling has been using your stuff.", MemeIDs: []uint{0, 12}},
}
